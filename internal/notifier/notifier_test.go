package notifier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-bed-caller/internal/domain/models"
	"github.com/central-university-dev/go-bed-caller/internal/notifier"
	"github.com/central-university-dev/go-bed-caller/pkg"
)

type fakeCollaborators struct {
	texts      []string
	restricted []int64
	restored   []int64
	placed     []int64
	discarded  []int64
}

func (f *fakeCollaborators) SendText(_ context.Context, _ int64, text string, _ int) error {
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeCollaborators) RestrictMember(_ context.Context, _, userID int64) error {
	f.restricted = append(f.restricted, userID)
	return nil
}

func (f *fakeCollaborators) RestoreMember(_ context.Context, _, userID int64) error {
	f.restored = append(f.restored, userID)
	return nil
}

func (f *fakeCollaborators) PlaceCall(_ context.Context, userID int64) error {
	f.placed = append(f.placed, userID)
	return nil
}

func (f *fakeCollaborators) DiscardCall(_ context.Context, callID int64) error {
	f.discarded = append(f.discarded, callID)
	return nil
}

func TestDispatcher_RoutesActions(t *testing.T) {
	fake := &fakeCollaborators{}
	dispatcher := notifier.NewDispatcher(fake, fake, fake, pkg.NewDiscardLogger())

	ctx := context.Background()

	actions := []models.Action{
		&models.SendText{ChatID: 100, Text: "подъём"},
		&models.PlaceCall{UserID: 100},
		&models.DiscardCall{CallID: 7},
		&models.RestrictMember{ChatID: -200, UserID: 100},
		&models.RestoreMember{ChatID: -200, UserID: 100},
	}

	for _, action := range actions {
		require.NoError(t, dispatcher.Dispatch(ctx, action))
	}

	assert.Equal(t, []string{"подъём"}, fake.texts)
	assert.Equal(t, []int64{100}, fake.placed)
	assert.Equal(t, []int64{7}, fake.discarded)
	assert.Equal(t, []int64{100}, fake.restricted)
	assert.Equal(t, []int64{100}, fake.restored)
}
