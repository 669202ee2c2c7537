package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaus/oakhaus-api/internal/models"
)

type fakeNotificationStore struct {
	created []models.Notification
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationStore) GetByUser(userID, limit int) ([]models.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationStore) MarkRead(id, userID int) error { return nil }

func (f *fakeNotificationStore) MarkAllRead(userID int) error {
	for i := range f.created {
		if f.created[i].UserID == userID {
			f.created[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) HasUnreadOfType(userID int, typ models.NotificationType, productID int) (bool, error) {
	for _, n := range f.created {
		if n.UserID == userID && n.Type == typ && n.ProductID == productID && !n.IsRead {
			return true, nil
		}
	}
	return false, nil
}

type fakeAdminDirectory struct {
	ids []int
}

func (f *fakeAdminDirectory) GetAdminIDs() ([]int, error) { return f.ids, nil }

func TestNotifyAdminsOnceDedupesPerProduct(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeAdminDirectory{ids: []int{1}})

	// The same product stays low across scans with a shrinking quantity, so
	// the message text differs each time.
	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (4 left, reorder at 5)")
	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (3 left, reorder at 5)")
	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (1 left, reorder at 5)")

	require.Len(t, store.created, 1)
	assert.Equal(t, 7, store.created[0].ProductID)
}

func TestNotifyAdminsOnceAllowsDistinctProducts(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeAdminDirectory{ids: []int{1}})

	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (4 left, reorder at 5)")
	svc.NotifyAdminsOnce(models.NotificationLowStock, 9, "Rattan Stool is low on stock (2 left, reorder at 3)")

	assert.Len(t, store.created, 2)
}

func TestNotifyAdminsOnceRealertsAfterRead(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeAdminDirectory{ids: []int{1}})

	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (4 left, reorder at 5)")
	require.NoError(t, store.MarkAllRead(1))
	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (2 left, reorder at 5)")

	assert.Len(t, store.created, 2)
}

func TestNotifyAdminsOnceFansOutToEveryAdmin(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, &fakeAdminDirectory{ids: []int{1, 2, 3}})

	svc.NotifyAdminsOnce(models.NotificationLowStock, 7, "Oak Bench is low on stock (4 left, reorder at 5)")

	assert.Len(t, store.created, 3)
}
