package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ls-tech-blogs/internal/domain"
	"ls-tech-blogs/internal/pkg/i18n"
	"ls-tech-blogs/internal/repository"
)

// topContributorCount is how many leading authors a top_contributors notification reaches.
const topContributorCount = 10

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = domain.ErrNotRecipient
	ErrTargetUserRequired   = errors.New("target user is required for specific_user notifications")
	ErrTargetUsersRequired  = errors.New("target users are required for specific_users notifications")
	ErrTargetUserNotFound   = errors.New("target user not found")
	ErrNoRecipients         = errors.New("no active users match the notification target")
	ErrInvalidTarget        = errors.New("invalid notification target")
	ErrExpiryInPast         = errors.New("expiry must be in the future")
)

// InteractionNotice describes a like, comment or reply worth telling someone about.
type InteractionNotice struct {
	Kind        domain.NotificationType
	RecipientID uuid.UUID
	Source      *domain.User
	Blog        *domain.Blog
	CommentID   *uuid.UUID
}

type Service interface {
	// Send creates one notification per read state the target resolves to: a single
	// broadcast for group audiences, one direct notification per user otherwise.
	Send(ctx context.Context, actor *domain.User, input domain.SendNotificationInput) ([]domain.Notification, error)
	NotifyBlogPublished(ctx context.Context, blog *domain.Blog, author *domain.User) error
	NotifyInteraction(ctx context.Context, notice InteractionNotice) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationList, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, actor *domain.User) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	ListAll(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminNotificationItem], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	statsRepo repository.StatsRepository
	locale    string
	now       func() time.Time
}

func NewService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, statsRepo repository.StatsRepository, locale string) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		statsRepo: statsRepo,
		locale:    locale,
		now:       time.Now,
	}
}

func (s *service) Send(ctx context.Context, actor *domain.User, input domain.SendNotificationInput) ([]domain.Notification, error) {
	if input.ExpiresAt != nil && !input.ExpiresAt.After(s.now()) {
		return nil, ErrExpiryInPast
	}

	states, err := s.resolveAudience(ctx, input)
	if err != nil {
		return nil, err
	}

	sourceID := actor.ID
	batch := make([]*domain.Notification, 0, len(states))
	for _, state := range states {
		batch = append(batch, &domain.Notification{
			ID:           uuid.New(),
			Title:        input.Title,
			Message:      input.Message,
			Type:         domain.NotifSystem,
			SourceUserID: &sourceID,
			ExpiresAt:    input.ExpiresAt,
			State:        state,
		})
	}
	if err := s.notifRepo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	sent := make([]domain.Notification, len(batch))
	for i, n := range batch {
		sent[i] = *n
	}
	return sent, nil
}

func (s *service) resolveAudience(ctx context.Context, input domain.SendNotificationInput) ([]domain.ReadState, error) {
	switch input.Target {
	case domain.TargetAll:
		recipients, err := s.userRepo.ListActiveIDs(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list recipients: %w", err)
		}
		return []domain.ReadState{domain.BroadcastState{UnreadUserIDs: domain.UUIDList(recipients)}}, nil

	case domain.TargetAdmins:
		admins, err := s.userRepo.ListActiveIDsByRole(ctx, string(domain.RoleAdmin))
		if err != nil {
			return nil, fmt.Errorf("failed to list admins: %w", err)
		}
		return groupState(domain.TargetAdmins, admins)

	case domain.TargetTopContributors:
		authors, err := s.statsRepo.TopAuthors(ctx, topContributorCount)
		if err != nil {
			return nil, fmt.Errorf("failed to rank contributors: %w", err)
		}
		ids := make([]uuid.UUID, 0, len(authors))
		for _, a := range authors {
			ids = append(ids, a.ID)
		}
		active, err := s.userRepo.FilterActiveIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		return groupState(domain.TargetTopContributors, active)

	case domain.TargetSpecificUser:
		if input.TargetUser == nil {
			return nil, ErrTargetUserRequired
		}
		target, err := s.userRepo.GetByID(ctx, *input.TargetUser)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, ErrTargetUserNotFound
		}
		return []domain.ReadState{domain.DirectState{Recipient: target.ID}}, nil

	case domain.TargetSpecificUsers:
		ids := distinct(input.TargetUsers)
		if len(ids) == 0 {
			return nil, ErrTargetUsersRequired
		}
		active, err := s.userRepo.FilterActiveIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(active) != len(ids) {
			return nil, ErrTargetUserNotFound
		}
		states := make([]domain.ReadState, 0, len(ids))
		for _, id := range ids {
			states = append(states, domain.DirectState{Recipient: id})
		}
		return states, nil
	}
	return nil, ErrInvalidTarget
}

// groupState builds a broadcast visible only to ids.
func groupState(audience domain.NotificationTarget, ids []uuid.UUID) ([]domain.ReadState, error) {
	if len(ids) == 0 {
		return nil, ErrNoRecipients
	}
	unread := make(domain.UUIDList, len(ids))
	copy(unread, ids)
	return []domain.ReadState{domain.BroadcastState{
		Audience:      audience,
		Recipients:    domain.UUIDList(ids),
		UnreadUserIDs: unread,
	}}, nil
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *service) NotifyBlogPublished(ctx context.Context, blog *domain.Blog, author *domain.User) error {
	recipients, err := s.userRepo.ListActiveIDs(ctx, &author.ID)
	if err != nil {
		return fmt.Errorf("failed to list recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil
	}

	authorID := author.ID
	blogID := blog.ID
	notif := &domain.Notification{
		ID:           uuid.New(),
		Title:        i18n.Translate(s.locale, "NOTIFY_NEW_BLOG_TITLE"),
		Message:      i18n.Translatef(s.locale, "NOTIFY_NEW_BLOG_MESSAGE", author.FullName(), blog.Title),
		Type:         domain.NotifNewBlog,
		SourceUserID: &authorID,
		BlogID:       &blogID,
		State:        domain.BroadcastState{UnreadUserIDs: domain.UUIDList(recipients)},
	}

	return s.notifRepo.Create(ctx, notif)
}

var interactionKeys = map[domain.NotificationType][2]string{
	domain.NotifLike:    {"NOTIFY_LIKE_TITLE", "NOTIFY_LIKE_MESSAGE"},
	domain.NotifComment: {"NOTIFY_COMMENT_TITLE", "NOTIFY_COMMENT_MESSAGE"},
	domain.NotifReply:   {"NOTIFY_REPLY_TITLE", "NOTIFY_REPLY_MESSAGE"},
}

func (s *service) NotifyInteraction(ctx context.Context, notice InteractionNotice) error {
	if notice.Source == nil || notice.Blog == nil {
		return nil
	}
	// nobody is told about their own activity
	if notice.RecipientID == notice.Source.ID {
		return nil
	}

	keys, ok := interactionKeys[notice.Kind]
	if !ok {
		return fmt.Errorf("unsupported interaction notification type %q", notice.Kind)
	}

	sourceID := notice.Source.ID
	blogID := notice.Blog.ID
	notif := &domain.Notification{
		ID:           uuid.New(),
		Title:        i18n.Translate(s.locale, keys[0]),
		Message:      i18n.Translatef(s.locale, keys[1], notice.Source.FullName(), notice.Blog.Title),
		Type:         notice.Kind,
		SourceUserID: &sourceID,
		BlogID:       &blogID,
		CommentID:    notice.CommentID,
		State:        domain.DirectState{Recipient: notice.RecipientID},
	}

	return s.notifRepo.Create(ctx, notif)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (*domain.NotificationList, error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListForUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.NotificationItem, 0, len(notifications))
	for i := range notifications {
		items = append(items, notifications[i].ViewFor(userID))
	}

	return &domain.NotificationList{
		PaginatedResponse: domain.NewPaginatedResponse(items, params.Page, params.PageSize, total),
		UnreadCount:       unread,
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil || notif.IsExpired(s.now()) {
		return ErrNotificationNotFound
	}

	next, err := notif.State.MarkRead(actor.ID, s.now())
	if err != nil {
		return err
	}

	switch next.(type) {
	case domain.BroadcastState:
		return s.notifRepo.RemoveUnreadUser(ctx, id, actor.ID)
	case domain.DirectState:
		return s.notifRepo.MarkDirectRead(ctx, id, actor.ID)
	default:
		return ErrInvalidTarget
	}
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) ListAll(ctx context.Context, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.AdminNotificationItem], error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListAll(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AdminNotificationItem]{}, err
	}

	items := make([]domain.AdminNotificationItem, 0, len(notifications))
	for i := range notifications {
		items = append(items, notifications[i].AdminView())
	}
	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.notifRepo.SoftDelete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}
