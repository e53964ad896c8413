package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"practicehub/internal/models"
)

func TestCommentStoreAddAndList(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	practices := NewPracticeStore(db)
	author := testUser(t, db, models.RoleMember)
	commenter := testUser(t, db, models.RoleMember)
	ctx := context.Background()

	p := testPractice(t, db, author.ID)

	question, err := s.Add(ctx, p.ID, commenter.ID, "How early in onboarding do you assign the owner?", true, nil)
	if err != nil {
		t.Fatalf("Add question: %v", err)
	}
	if !question.IsQuestion || question.IsResolved {
		t.Errorf("question flags: got is_question=%v is_resolved=%v", question.IsQuestion, question.IsResolved)
	}

	reply, err := s.Add(ctx, p.ID, author.ID, "Before the kickoff call.", false, &question.ID)
	if err != nil {
		t.Fatalf("Add reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != question.ID {
		t.Errorf("reply parent: got %v, want %s", reply.ParentID, question.ID)
	}

	// Replies count toward comment_count.
	found, _ := practices.FindByID(ctx, p.ID)
	if found.CommentCount != 2 {
		t.Errorf("comment_count: got %d, want 2", found.CommentCount)
	}

	items, err := s.ListByPractice(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("ListByPractice: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("list: got %d comments, want 2", len(items))
	}
	if items[0].ID != question.ID {
		t.Error("expected chronological order, question first")
	}
}

func TestCommentStoreAddValidation(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testUser(t, db, models.RoleMember)
	ctx := context.Background()

	p := testPractice(t, db, author.ID)
	other := testPractice(t, db, author.ID)

	if _, err := s.Add(ctx, p.ID, author.ID, "   ", false, nil); !errors.Is(err, models.ErrValidation) {
		t.Errorf("blank content: got %v, want ErrValidation", err)
	}

	missing := uuid.New()
	if _, err := s.Add(ctx, p.ID, author.ID, "reply", false, &missing); !errors.Is(err, models.ErrValidation) {
		t.Errorf("missing parent: got %v, want ErrValidation", err)
	}

	// A parent on a different practice is rejected.
	onOther, err := s.Add(ctx, other.ID, author.ID, "comment on other practice", false, nil)
	if err != nil {
		t.Fatalf("Add on other practice: %v", err)
	}
	if _, err := s.Add(ctx, p.ID, author.ID, "cross reply", false, &onOther.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("cross-practice parent: got %v, want ErrValidation", err)
	}
}

func TestCommentStoreResolve(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	practiceAuthor := testUser(t, db, models.RoleMember)
	asker := testUser(t, db, models.RoleMember)
	stranger := testUser(t, db, models.RoleMember)
	ctx := context.Background()

	p := testPractice(t, db, practiceAuthor.ID)

	question, err := s.Add(ctx, p.ID, asker.ID, "Does this work for enterprise accounts?", true, nil)
	if err != nil {
		t.Fatalf("Add question: %v", err)
	}
	plain, err := s.Add(ctx, p.ID, asker.ID, "Nice write-up.", false, nil)
	if err != nil {
		t.Fatalf("Add comment: %v", err)
	}

	if err := s.Resolve(ctx, plain.ID, asker.ID, false); !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("resolve non-question: got %v, want ErrInvalidState", err)
	}
	if err := s.Resolve(ctx, question.ID, stranger.ID, false); !errors.Is(err, models.ErrPermission) {
		t.Errorf("stranger resolve: got %v, want ErrPermission", err)
	}
	if err := s.Resolve(ctx, uuid.New(), asker.ID, false); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("resolve missing: got %v, want ErrNotFound", err)
	}

	// The practice author may resolve questions on their practice.
	if err := s.Resolve(ctx, question.ID, practiceAuthor.ID, false); err != nil {
		t.Fatalf("practice author resolve: %v", err)
	}
	items, _ := s.ListByPractice(ctx, p.ID, nil)
	for _, c := range items {
		if c.ID == question.ID && !c.IsResolved {
			t.Error("expected question resolved")
		}
	}

	// An admin may resolve regardless of authorship; resolving twice is fine.
	if err := s.Resolve(ctx, question.ID, stranger.ID, true); err != nil {
		t.Errorf("admin resolve: %v", err)
	}
}

func TestCommentStoreUpvoteIdempotent(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testUser(t, db, models.RoleMember)
	voter := testUser(t, db, models.RoleMember)
	ctx := context.Background()

	p := testPractice(t, db, author.ID)
	c, err := s.Add(ctx, p.ID, author.ID, "Try pairing this with a success plan.", false, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	count, err := s.Upvote(ctx, c.ID, voter.ID)
	if err != nil {
		t.Fatalf("Upvote: %v", err)
	}
	if count != 1 {
		t.Errorf("upvote_count: got %d, want 1", count)
	}

	// Upvoting again does not double-count.
	count, err = s.Upvote(ctx, c.ID, voter.ID)
	if err != nil {
		t.Fatalf("second Upvote: %v", err)
	}
	if count != 1 {
		t.Errorf("upvote_count after repeat: got %d, want 1", count)
	}

	count, err = s.RemoveUpvote(ctx, c.ID, voter.ID)
	if err != nil {
		t.Fatalf("RemoveUpvote: %v", err)
	}
	if count != 0 {
		t.Errorf("upvote_count after removal: got %d, want 0", count)
	}
	// Removing an absent upvote stays at zero.
	if count, err = s.RemoveUpvote(ctx, c.ID, voter.ID); err != nil || count != 0 {
		t.Errorf("repeat RemoveUpvote: got (%d, %v), want (0, nil)", count, err)
	}

	if _, err := s.Upvote(ctx, uuid.New(), voter.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("upvote missing comment: got %v, want ErrNotFound", err)
	}
}

func TestCommentStoreListHydratesViewerUpvote(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testUser(t, db, models.RoleMember)
	voter := testUser(t, db, models.RoleMember)
	ctx := context.Background()

	p := testPractice(t, db, author.ID)
	c, err := s.Add(ctx, p.ID, author.ID, "Worth trying on at-risk accounts too.", false, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Upvote(ctx, c.ID, voter.ID); err != nil {
		t.Fatalf("Upvote: %v", err)
	}

	items, err := s.ListByPractice(ctx, p.ID, &voter.ID)
	if err != nil {
		t.Fatalf("ListByPractice: %v", err)
	}
	if len(items) != 1 || !items[0].HasUpvoted {
		t.Errorf("expected has_upvoted true for voter, got %+v", items)
	}

	// Another viewer, and the anonymous viewer, see has_upvoted false.
	items, _ = s.ListByPractice(ctx, p.ID, &author.ID)
	if len(items) != 1 || items[0].HasUpvoted {
		t.Error("expected has_upvoted false for non-voter")
	}
	items, _ = s.ListByPractice(ctx, p.ID, nil)
	if len(items) != 1 || items[0].HasUpvoted {
		t.Error("expected has_upvoted false for anonymous viewer")
	}
}
