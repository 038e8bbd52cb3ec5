package repository

import (
	"context"
	"testing"
	"time"

	"benign_fashion_backend/internal/database"
	"benign_fashion_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func sampleMaster(userID *int64, total float64) *models.OrderMaster {
	return &models.OrderMaster{
		UserID:      userID,
		FullName:    "Jane Doe",
		Division:    "10",
		District:    "101",
		Address:     "123 Lane",
		Phone:       "01712345678",
		Method:      models.MethodBkash,
		TotalAmount: total,
	}
}

func sampleDetail(productID int64, amount float64, qty int) models.OrderDetail {
	return models.OrderDetail{
		ProductID: productID,
		Size:      models.SizeL,
		Quantity:  qty,
		Amount:    amount,
	}
}

func TestCreateOrderPropagatesMasterID(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	details := []models.OrderDetail{
		sampleDetail(7, 500, 1),
		sampleDetail(8, 600, 2),
		sampleDetail(9, 400, 1),
	}
	id, err := repo.CreateOrder(context.Background(), sampleMaster(nil, 1500), details)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	var rows []models.OrderDetail
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, id, row.OrdersMasterID)
	}
}

func TestCreateOrderAtomicRollback(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	// Une ligne existante occupe déjà l'id 999 : la dernière insertion de la
	// nouvelle commande va violer la clé primaire en pleine transaction.
	require.NoError(t, db.Create(&models.OrderDetail{
		ID: 999, OrdersMasterID: 42, ProductID: 1,
		Size: models.SizeM, Quantity: 1, Amount: 100,
	}).Error)

	details := []models.OrderDetail{
		sampleDetail(7, 700, 1),
		{ID: 999, ProductID: 8, Size: models.SizeXL, Quantity: 1, Amount: 800},
	}
	_, err := repo.CreateOrder(context.Background(), sampleMaster(nil, 1500), details)
	require.Error(t, err)

	// Tout ou rien : aucun en-tête, aucune ligne en plus de celle préexistante
	var masterCount, detailCount int64
	db.Model(&models.OrderMaster{}).Count(&masterCount)
	db.Model(&models.OrderDetail{}).Count(&detailCount)
	assert.Equal(t, int64(0), masterCount)
	assert.Equal(t, int64(1), detailCount)
}

func TestCreateOrderRejectsEmptyLines(t *testing.T) {
	repo := NewOrderRepository(setupDB(t))
	_, err := repo.CreateOrder(context.Background(), sampleMaster(nil, 100), nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	details := []models.OrderDetail{sampleDetail(7, 1000, 1)}
	_, err := repo.CreateOrder(context.Background(), sampleMaster(nil, 1500), details)
	assert.ErrorIs(t, err, ErrTotalMismatch)

	var count int64
	db.Model(&models.OrderMaster{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderDefaultsQuantityToOne(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	details := []models.OrderDetail{sampleDetail(7, 1500, 0)}
	id, err := repo.CreateOrder(context.Background(), sampleMaster(nil, 1500), details)
	require.NoError(t, err)

	var row models.OrderDetail
	require.NoError(t, db.Where("orders_master_id = ?", id).First(&row).Error)
	assert.Equal(t, 1, row.Quantity)
}

func TestCreateOrderStartsPending(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	id, err := repo.CreateOrder(context.Background(), sampleMaster(nil, 1500),
		[]models.OrderDetail{sampleDetail(7, 1500, 2)})
	require.NoError(t, err)

	master, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, master.Status)
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	older := sampleMaster(nil, 100)
	older.CreatedAt = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := sampleMaster(nil, 200)
	newer.CreatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	idOlder, err := repo.CreateOrder(context.Background(), older, []models.OrderDetail{sampleDetail(1, 100, 1)})
	require.NoError(t, err)
	idNewer, err := repo.CreateOrder(context.Background(), newer, []models.OrderDetail{sampleDetail(2, 200, 1)})
	require.NoError(t, err)

	orders, err := repo.GetAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, idNewer, orders[0].OrderMaster.ID)
	assert.Equal(t, idOlder, orders[1].OrderMaster.ID)
	assert.Len(t, orders[0].OrderDetails, 1)
}

func TestGetOrdersByUserIDScoping(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	alice, bob := int64(1), int64(2)
	_, err := repo.CreateOrder(ctx, sampleMaster(&alice, 100), []models.OrderDetail{sampleDetail(1, 100, 1)})
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, sampleMaster(&bob, 200), []models.OrderDetail{sampleDetail(2, 200, 1)})
	require.NoError(t, err)
	// Commande invité : ne doit sortir pour personne
	_, err = repo.CreateOrder(ctx, sampleMaster(nil, 300), []models.OrderDetail{sampleDetail(3, 300, 1)})
	require.NoError(t, err)

	forAlice, err := repo.GetOrdersByUserID(ctx, alice)
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	require.NotNil(t, forAlice[0].OrderMaster.UserID)
	assert.Equal(t, alice, *forAlice[0].OrderMaster.UserID)

	// Id invalide ou absent : liste vide, pas d'erreur
	empty, err := repo.GetOrdersByUserID(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
	empty, err = repo.GetOrdersByUserID(ctx, -7)
	require.NoError(t, err)
	assert.Empty(t, empty)
	empty, err = repo.GetOrdersByUserID(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDetailsEnrichedWithProductName(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Product{ID: 7, Name: "Polo classique", Price: 750, CategoryID: 1}).Error)

	uid := int64(5)
	id, err := repo.CreateOrder(ctx, sampleMaster(&uid, 1500), []models.OrderDetail{
		sampleDetail(7, 750, 1),
		sampleDetail(404, 750, 1), // produit supprimé entre-temps
	})
	require.NoError(t, err)

	orders, err := repo.GetOrdersByUserID(ctx, uid)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].OrderDetails, 2)
	assert.Equal(t, id, orders[0].OrderMaster.ID)
	assert.Equal(t, "Polo classique", orders[0].OrderDetails[0].ProductName)
	assert.Empty(t, orders[0].OrderDetails[1].ProductName) // LEFT JOIN : nom absent, pas d'erreur
}

func TestConfirmIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleMaster(nil, 100), []models.OrderDetail{sampleDetail(1, 100, 1)})
	require.NoError(t, err)

	status, changed, err := repo.Confirm(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, status)
	assert.True(t, changed)

	// Deuxième confirmation : même résultat, pas d'erreur, mais aucun nouvel
	// écrit signalé (les handlers s'en servent pour ne pas re-notifier)
	status, changed, err = repo.Confirm(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, status)
	assert.False(t, changed)
}

func TestConfirmRejectedAfterDelivery(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleMaster(nil, 100), []models.OrderDetail{sampleDetail(1, 100, 1)})
	require.NoError(t, err)

	_, _, err = repo.Complete(ctx, id)
	require.NoError(t, err)

	_, _, err = repo.Confirm(ctx, id)
	assert.ErrorIs(t, err, ErrAlreadyDelivered)
}

func TestCompleteIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleMaster(nil, 100), []models.OrderDetail{sampleDetail(1, 100, 1)})
	require.NoError(t, err)

	status, changed, err := repo.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, status)
	assert.True(t, changed)

	status, changed, err = repo.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, status)
	assert.False(t, changed)
}

func TestTransitionsOnMissingOrder(t *testing.T) {
	repo := NewOrderRepository(setupDB(t))
	ctx := context.Background()

	_, _, err := repo.Confirm(ctx, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, _, err = repo.Complete(ctx, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	err = repo.DeleteOrder(ctx, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteCascadesToDetails(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleMaster(nil, 300), []models.OrderDetail{
		sampleDetail(1, 100, 1),
		sampleDetail(2, 200, 1),
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteOrder(ctx, id))

	var detailCount int64
	db.Model(&models.OrderDetail{}).Where("orders_master_id = ?", id).Count(&detailCount)
	assert.Equal(t, int64(0), detailCount)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteRefusedOnceConfirmed(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	id, err := repo.CreateOrder(ctx, sampleMaster(nil, 100), []models.OrderDetail{sampleDetail(1, 100, 1)})
	require.NoError(t, err)
	_, _, err = repo.Confirm(ctx, id)
	require.NoError(t, err)

	err = repo.DeleteOrder(ctx, id)
	assert.ErrorIs(t, err, ErrNotPending)

	// La commande et ses lignes sont toujours là
	var detailCount int64
	db.Model(&models.OrderDetail{}).Where("orders_master_id = ?", id).Count(&detailCount)
	assert.Equal(t, int64(1), detailCount)
}
