package facade

import (
	"avatar-chat/container"
	"avatar-chat/contract"
	"avatar-chat/domain/account"
	"avatar-chat/domain/event"
	"avatar-chat/errors"
	"avatar-chat/mocks"
	"avatar-chat/services"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type doubles struct {
	store         *mocks.MockChatStore
	recents       *mocks.MockRecentAvatarCache
	auth          *mocks.MockAuthProvider
	ai            *mocks.MockAIGenerationProvider
	analytics     *mocks.MockAnalyticsSink
	notifications *mocks.MockNotificationScheduler
}

func newContainer(t *testing.T) (*container.Container, doubles) {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	d := doubles{
		store:         mocks.NewMockChatStore(ctrl),
		recents:       mocks.NewMockRecentAvatarCache(ctrl),
		auth:          mocks.NewMockAuthProvider(ctrl),
		ai:            mocks.NewMockAIGenerationProvider(ctrl),
		analytics:     mocks.NewMockAnalyticsSink(ctrl),
		notifications: mocks.NewMockNotificationScheduler(ctrl),
	}
	c := container.New(log)
	container.Register[contract.ChatStore](c, d.store)
	container.RegisterFactory(c, func(r container.Resolver) (services.IChatManager, error) {
		store, err := container.Resolve[contract.ChatStore](r)
		if err != nil {
			return nil, err
		}
		return services.NewChatManager(log, store), nil
	})
	container.Register[contract.RecentAvatarCache](c, d.recents)
	container.Register[contract.AuthProvider](c, d.auth)
	container.Register[contract.AIGenerationProvider](c, d.ai)
	container.Register[contract.AnalyticsSink](c, d.analytics)
	container.Register[contract.NotificationScheduler](c, d.notifications)
	return c, d
}

func TestNewCoreInteractor_Resolves_Everything(t *testing.T) {
	req := require.New(t)
	c, _ := newContainer(t)

	req.NoError(c.Validate())
	interactor, err := NewCoreInteractor(c)

	req.NoError(err)
	req.NotNil(interactor)
}

func TestNewCoreInteractor_Missing_Capability(t *testing.T) {
	req := require.New(t)
	c := container.New(logs.GetLoggerFromLevel(slog.LevelError))
	container.Register[contract.ChatStore](c, mocks.NewMockChatStore(gomock.NewController(t)))

	_, err := NewCoreInteractor(c)

	req.ErrorIs(err, errors.ErrNotRegistered)
}

func TestCoreInteractor_GetAuthID(t *testing.T) {
	req := require.New(t)
	c, d := newContainer(t)
	interactor, err := NewCoreInteractor(c)
	req.NoError(err)

	// Given nobody signed in
	d.auth.EXPECT().CurrentIdentity().Return(nil).Times(1)
	_, err = interactor.GetAuthID()
	req.ErrorIs(err, errors.ErrAuthRequired)

	// Given a signed-in user
	d.auth.EXPECT().CurrentIdentity().Return(&account.Identity{ID: "u1"}).Times(1)
	id, err := interactor.GetAuthID()
	req.NoError(err)
	req.Equal("u1", id)
}

func TestCoreInteractor_Forwards_To_One_Capability(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	c, d := newContainer(t)
	interactor, err := NewCoreInteractor(c)
	req.NoError(err)

	d.store.EXPECT().GetConversation(ctx, "u1", "a1").Return(nil, nil).Times(1)
	d.recents.EXPECT().GetRecents(ctx).Return(nil, nil).Times(1)
	d.analytics.EXPECT().Track(gomock.Any()).Times(1)
	d.notifications.EXPECT().Schedule(gomock.Any()).Times(1)
	d.ai.EXPECT().GenerateImage(ctx, "cat").Return([]byte("img"), nil).Times(1)

	conversation, err := interactor.GetConversation(ctx, "u1", "a1")
	req.NoError(err)
	req.Nil(conversation)
	_, err = interactor.GetRecents(ctx)
	req.NoError(err)
	interactor.TrackEvent(event.New("test", event.Info))
	interactor.ScheduleNotification(event.Notification{UserID: "u1"})
	image, err := interactor.GenerateImage(ctx, "cat")
	req.NoError(err)
	req.Equal([]byte("img"), image)
}
