package interaction

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/repository"
	"ls-tech-blogs/internal/service/notification"
)

var (
	ErrMissingCategory     = errors.New("missing mandatory field `category`")
	ErrInvalidCategory     = errors.New("`category` must be one of like, comment")
	ErrMissingContent      = errors.New("missing mandatory field `content`")
	ErrMissingParent       = errors.New("missing mandatory field `parentComment`")
	ErrBlogNotFound        = errors.New("blog not found")
	ErrParentNotFound      = errors.New("parent comment not found")
	ErrAlreadyLiked        = errors.New("you have already liked this blog")
	ErrOwnBlog             = errors.New("you cannot like your own blog")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentAlreadyLiked = errors.New("you have already liked this comment")
	ErrCommentNotLiked     = errors.New("you have not liked this comment")
	ErrForbidden           = errors.New("you cannot modify this interaction")
)

type Service interface {
	PostInteraction(ctx context.Context, blogID uuid.UUID, actor *domain.User, input domain.PostInteractionInput) (*domain.InteractionResult, error)
	LikeCommentOrReply(ctx context.Context, id uuid.UUID, actor *domain.User, action domain.CommentLikeAction) (*domain.InteractionResult, error)
	DeleteInteraction(ctx context.Context, id uuid.UUID, actor *domain.User) (int64, error)
	GetComments(ctx context.Context, blogID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Interaction], error)
	GetReplies(ctx context.Context, commentID uuid.UUID, query domain.ReplyQuery) (*domain.ReplyPage, error)
	GetLikes(ctx context.Context, blogID uuid.UUID) ([]domain.Interaction, error)
	UpdateComment(ctx context.Context, id uuid.UUID, actor *domain.User, content string) (*domain.InteractionResult, error)
	ListComments(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Interaction], error)
	SetNotificationService(notifService notification.Service)
}

type service struct {
	interactionRepo repository.InteractionRepository
	blogRepo        repository.BlogRepository
	notifService    notification.Service
	locale          string
}

func NewService(interactionRepo repository.InteractionRepository, blogRepo repository.BlogRepository, locale string) Service {
	return &service{
		interactionRepo: interactionRepo,
		blogRepo:        blogRepo,
		locale:          locale,
	}
}

func (s *service) SetNotificationService(notifService notification.Service) {
	s.notifService = notifService
}

func (s *service) message(key string) string {
	return i18n.Translate(s.locale, key)
}

func (s *service) publishedBlog(ctx context.Context, blogID uuid.UUID) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog == nil || !blog.IsPublished() {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

func checkInput(input domain.PostInteractionInput) error {
	if input.IsReply && input.ParentComment == nil {
		return ErrMissingParent
	}
	if input.Category == "" {
		return ErrMissingCategory
	}
	if !input.Category.IsValid() {
		return ErrInvalidCategory
	}
	if input.Category == domain.CategoryComment && (input.Content == nil || strings.TrimSpace(*input.Content) == "") {
		return ErrMissingContent
	}
	return nil
}

func (s *service) PostInteraction(ctx context.Context, blogID uuid.UUID, actor *domain.User, input domain.PostInteractionInput) (*domain.InteractionResult, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	blog, err := s.publishedBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if input.Category == domain.CategoryLike {
		return s.like(ctx, blog, actor)
	}
	return s.comment(ctx, blog, actor, input)
}

func (s *service) like(ctx context.Context, blog *domain.Blog, actor *domain.User) (*domain.InteractionResult, error) {
	liked, err := s.interactionRepo.HasLiked(ctx, blog.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, ErrAlreadyLiked
	}
	if blog.AuthorID == actor.ID {
		return nil, ErrOwnBlog
	}

	like := &domain.Interaction{
		ID:          uuid.New(),
		Category:    domain.CategoryLike,
		BlogID:      blog.ID,
		CreatedBy:   actor.ID,
		Attachments: domain.Attachments{},
		LikedBy:     domain.UUIDList{},
	}
	if err := s.interactionRepo.CreateLike(ctx, like); err != nil {
		// the partial unique index caught a concurrent like
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	summary := actor.Summary()
	like.Creator = &summary

	s.notify(ctx, notification.InteractionNotice{
		Kind:        domain.NotifLike,
		RecipientID: blog.AuthorID,
		Source:      actor,
		Blog:        blog,
	})

	return &domain.InteractionResult{Interaction: like, Message: s.message("INTERACTION_LIKED")}, nil
}

func (s *service) comment(ctx context.Context, blog *domain.Blog, actor *domain.User, input domain.PostInteractionInput) (*domain.InteractionResult, error) {
	comment := &domain.Interaction{
		ID:          uuid.New(),
		Category:    domain.CategoryComment,
		BlogID:      blog.ID,
		CreatedBy:   actor.ID,
		Content:     input.Content,
		Attachments: domain.Attachments(input.Attachments),
		LikedBy:     domain.UUIDList{},
	}
	if comment.Attachments == nil {
		comment.Attachments = domain.Attachments{}
	}

	var parent *domain.Interaction
	if input.IsReply {
		var err error
		parent, err = s.interactionRepo.GetByID(ctx, *input.ParentComment)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.Category != domain.CategoryComment || parent.BlogID != blog.ID {
			return nil, ErrParentNotFound
		}

		// replies stay one level deep: answering a reply attaches to its thread root
		rootID := parent.ID
		if parent.ParentID != nil {
			rootID = *parent.ParentID
		}
		comment.ParentID = &rootID
		comment.IsReply = true
	}

	if err := s.interactionRepo.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	summary := actor.Summary()
	comment.Creator = &summary

	commentID := comment.ID
	s.notify(ctx, notification.InteractionNotice{
		Kind:        domain.NotifComment,
		RecipientID: blog.AuthorID,
		Source:      actor,
		Blog:        blog,
		CommentID:   &commentID,
	})

	if parent == nil {
		return &domain.InteractionResult{Interaction: comment, Message: s.message("INTERACTION_COMMENTED")}, nil
	}

	if parent.CreatedBy != blog.AuthorID {
		s.notify(ctx, notification.InteractionNotice{
			Kind:        domain.NotifReply,
			RecipientID: parent.CreatedBy,
			Source:      actor,
			Blog:        blog,
			CommentID:   &commentID,
		})
	}
	return &domain.InteractionResult{Interaction: comment, Message: s.message("INTERACTION_REPLIED")}, nil
}

// notify never fails the interaction that triggered it.
func (s *service) notify(ctx context.Context, notice notification.InteractionNotice) {
	if s.notifService == nil {
		return
	}
	if err := s.notifService.NotifyInteraction(ctx, notice); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"blog_id":      notice.Blog.ID,
			"recipient_id": notice.RecipientID,
			"type":         notice.Kind,
		}).Warn("interaction notification dropped")
	}
}

func (s *service) LikeCommentOrReply(ctx context.Context, id uuid.UUID, actor *domain.User, action domain.CommentLikeAction) (*domain.InteractionResult, error) {
	comment, err := s.interactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.Category != domain.CategoryComment {
		return nil, ErrCommentNotFound
	}

	var (
		changed bool
		key     string
	)
	switch action {
	case domain.ActionLike:
		changed, err = s.interactionRepo.LikeComment(ctx, id, actor.ID)
		if err == nil && !changed {
			err = ErrCommentAlreadyLiked
		}
		key = "COMMENT_LIKED"
	case domain.ActionUnlike:
		changed, err = s.interactionRepo.UnlikeComment(ctx, id, actor.ID)
		if err == nil && !changed {
			err = ErrCommentNotLiked
		}
		key = "COMMENT_UNLIKED"
	default:
		return nil, errors.New("action must be like or unlike")
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.interactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrCommentNotFound
	}
	return &domain.InteractionResult{Interaction: updated, Message: s.message(key)}, nil
}

// DeleteInteraction reports how many interactions were removed, replies included.
func (s *service) DeleteInteraction(ctx context.Context, id uuid.UUID, actor *domain.User) (int64, error) {
	in, err := s.interactionRepo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if in == nil {
		return 0, ErrInteractionNotFound
	}
	if !actor.CanModify(in.CreatedBy) {
		return 0, ErrForbidden
	}

	cascaded, err := s.interactionRepo.SoftDelete(ctx, in)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrInteractionNotFound
	}
	if err != nil {
		return 0, err
	}
	return 1 + cascaded, nil
}

func (s *service) GetComments(ctx context.Context, blogID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Interaction], error) {
	params.Validate()

	if _, err := s.publishedBlog(ctx, blogID); err != nil {
		return domain.PaginatedResponse[domain.Interaction]{}, err
	}

	comments, total, err := s.interactionRepo.ListComments(ctx, blogID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Interaction]{}, err
	}
	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}

func (s *service) GetReplies(ctx context.Context, commentID uuid.UUID, query domain.ReplyQuery) (*domain.ReplyPage, error) {
	query.Validate()

	parent, err := s.interactionRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.Category != domain.CategoryComment {
		return nil, ErrCommentNotFound
	}

	replies, total, err := s.interactionRepo.ListReplies(ctx, commentID, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []domain.Interaction{}
	}

	return &domain.ReplyPage{
		Data:    replies,
		Skip:    query.Skip,
		Limit:   query.Limit,
		Total:   total,
		HasMore: int64(query.Skip+len(replies)) < total,
	}, nil
}

func (s *service) GetLikes(ctx context.Context, blogID uuid.UUID) ([]domain.Interaction, error) {
	if _, err := s.publishedBlog(ctx, blogID); err != nil {
		return nil, err
	}

	likes, err := s.interactionRepo.ListLikes(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []domain.Interaction{}
	}
	return likes, nil
}

func (s *service) UpdateComment(ctx context.Context, id uuid.UUID, actor *domain.User, content string) (*domain.InteractionResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMissingContent
	}

	comment, err := s.interactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.Category != domain.CategoryComment {
		return nil, ErrCommentNotFound
	}
	if !actor.CanModify(comment.CreatedBy) {
		return nil, ErrForbidden
	}

	if err := s.interactionRepo.UpdateContent(ctx, id, content, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	updatedBy := actor.ID
	comment.Content = &content
	comment.UpdatedBy = &updatedBy
	return &domain.InteractionResult{Interaction: comment, Message: s.message("COMMENT_UPDATED")}, nil
}

func (s *service) ListComments(ctx context.Context, filter domain.CommentFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Interaction], error) {
	params.Validate()

	comments, total, err := s.interactionRepo.ListAdmin(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Interaction]{}, err
	}
	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}
