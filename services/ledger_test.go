package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"make-the-change/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Partner{},
		&models.Project{},
		&models.Investment{},
		&models.Subscription{},
		&models.PointsTransaction{},
	))
	return db
}

func TestCreditAndDebitPoints(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "claire@example.com", PointsBalance: 0}
	require.NoError(t, db.Create(&user).Error)

	entry, err := CreditPoints(db, user.ID, 65, models.TxEarnInvestment, "investment:1")
	require.NoError(t, err)
	assert.Equal(t, 65, entry.Delta)
	assert.Equal(t, 65, entry.BalanceAfter)

	entry, err = DebitPoints(db, user.ID, 40, models.TxSpendOrder, "order:1")
	require.NoError(t, err)
	assert.Equal(t, -40, entry.Delta)
	assert.Equal(t, 25, entry.BalanceAfter)

	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 25, fresh.PointsBalance)

	var count int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestDebitPoints_InsufficientBalance(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "paul@example.com", PointsBalance: 10}
	require.NoError(t, db.Create(&user).Error)

	_, err := DebitPoints(db, user.ID, 50, models.TxSpendOrder, "order:2")
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Le solde et le grand livre restent intacts.
	var fresh models.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 10, fresh.PointsBalance)

	var count int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreditPoints_RejectsNonPositive(t *testing.T) {
	db := testDB(t)
	user := models.User{Email: "zoe@example.com"}
	require.NoError(t, db.Create(&user).Error)

	_, err := CreditPoints(db, user.ID, 0, models.TxAdjustment, "")
	assert.Error(t, err)
	_, err = DebitPoints(db, user.ID, -5, models.TxAdjustment, "")
	assert.Error(t, err)
}
