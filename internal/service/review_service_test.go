package service

import (
	"errors"
	"testing"

	"github.com/market-next/internal/repository"

	"gorm.io/gorm"
)

func newReviewTestService(t *testing.T) (*ReviewService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return NewReviewService(repository.NewReviewRepository(db), repository.NewProductRepository(db)), db
}

func TestReviewCreateValidation(t *testing.T) {
	svc, db := newReviewTestService(t)
	user := mustCreateTestUser(t, db, "review_user")
	seller := mustCreateTestUser(t, db, "review_seller")
	product := mustCreateTestProduct(t, db, seller.ID, "Keyboard", "80.00")

	cases := []struct {
		name  string
		input ReviewInput
		want  error
	}{
		{name: "rating too low", input: ReviewInput{Rating: 0, Title: "t", Content: "c"}, want: ErrReviewRatingInvalid},
		{name: "rating too high", input: ReviewInput{Rating: 6, Title: "t", Content: "c"}, want: ErrReviewRatingInvalid},
		{name: "empty title", input: ReviewInput{Rating: 4, Title: "  ", Content: "c"}, want: ErrReviewTitleInvalid},
		{name: "empty content", input: ReviewInput{Rating: 4, Title: "t", Content: " "}, want: ErrReviewContentInvalid},
	}
	for _, tc := range cases {
		if _, err := svc.Create(user.ID, product.ID, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}

	if _, err := svc.Create(user.ID, 9999, ReviewInput{Rating: 4, Title: "t", Content: "c"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
}

func TestReviewCreateDuplicate(t *testing.T) {
	svc, db := newReviewTestService(t)
	user := mustCreateTestUser(t, db, "review_user")
	seller := mustCreateTestUser(t, db, "review_seller")
	product := mustCreateTestProduct(t, db, seller.ID, "Keyboard", "80.00")

	if _, err := svc.Create(user.ID, product.ID, ReviewInput{Rating: 5, Title: "Great", Content: "Types well."}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(user.ID, product.ID, ReviewInput{Rating: 3, Title: "Changed my mind", Content: "Still fine."}); !errors.Is(err, ErrReviewDuplicate) {
		t.Fatalf("duplicate create want ErrReviewDuplicate got %v", err)
	}
}

func TestReviewUpdateOwnership(t *testing.T) {
	svc, db := newReviewTestService(t)
	author := mustCreateTestUser(t, db, "review_author")
	other := mustCreateTestUser(t, db, "review_other")
	seller := mustCreateTestUser(t, db, "review_seller")
	product := mustCreateTestProduct(t, db, seller.ID, "Keyboard", "80.00")

	review, err := svc.Create(author.ID, product.ID, ReviewInput{Rating: 5, Title: "Great", Content: "Types well."})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := ReviewInput{Rating: 3, Title: "Revised", Content: "Keycaps wore out."}
	if _, err := svc.Update(other.ID, 9999, input); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("missing review want ErrReviewNotFound got %v", err)
	}
	if _, err := svc.Update(other.ID, review.ID, input); !errors.Is(err, ErrNotReviewOwner) {
		t.Fatalf("foreign update want ErrNotReviewOwner got %v", err)
	}

	updated, err := svc.Update(author.ID, review.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Rating != 3 || updated.Title != "Revised" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestReviewDelete(t *testing.T) {
	svc, db := newReviewTestService(t)
	author := mustCreateTestUser(t, db, "review_author")
	other := mustCreateTestUser(t, db, "review_other")
	seller := mustCreateTestUser(t, db, "review_seller")
	product := mustCreateTestProduct(t, db, seller.ID, "Keyboard", "80.00")

	review, err := svc.Create(author.ID, product.ID, ReviewInput{Rating: 5, Title: "Great", Content: "Types well."})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(other.ID, review.ID); !errors.Is(err, ErrNotReviewOwner) {
		t.Fatalf("foreign delete want ErrNotReviewOwner got %v", err)
	}
	if err := svc.Delete(author.ID, review.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	reviews, err := svc.ListByProduct(product.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("reviews should be empty, got %d", len(reviews))
	}
}
