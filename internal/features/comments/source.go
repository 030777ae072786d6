package comments

import (
	"context"

	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source adapts this feature to the reports.CommentSource interface so
// report detail pages can embed their discussion.
type Source struct {
	repo     *Repository
	authRepo *auth.Repository
}

func NewSource(repo *Repository, authRepo *auth.Repository) *Source {
	return &Source{repo: repo, authRepo: authRepo}
}

func (s *Source) ListForReport(ctx context.Context, reportID primitive.ObjectID) ([]reports.CommentView, error) {
	comments, err := s.repo.ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	views := make([]reports.CommentView, 0, len(comments))
	authorCache := map[primitive.ObjectID]*auth.AuthorInfo{}
	for _, comment := range comments {
		view := reports.CommentView{
			ID:        comment.ID,
			Content:   comment.Content,
			ParentID:  comment.ParentID,
			CreatedAt: comment.CreatedAt,
		}

		author, cached := authorCache[comment.AuthorID]
		if !cached {
			author, _ = s.authRepo.GetAuthorInfo(ctx, comment.AuthorID)
			authorCache[comment.AuthorID] = author
		}
		if author != nil {
			view.Author = *author
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *Source) CountForReport(ctx context.Context, reportID primitive.ObjectID) (int64, error) {
	return s.repo.CountByReport(ctx, reportID)
}
