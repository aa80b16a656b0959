package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"make-the-change/models"
	"make-the-change/points"
)

func TestConfirmInvestment(t *testing.T) {
	db := testDB(t)

	user := models.User{Email: "marc@example.com"}
	require.NoError(t, db.Create(&user).Error)
	partner := models.Partner{Name: "HABEEBEE", Slug: "habeebee-1a2b3c4d"}
	require.NoError(t, db.Create(&partner).Error)
	project := models.Project{
		PartnerID: partner.ID,
		Name:      "Ruches de Gand",
		Slug:      "ruches-de-gand-0f9e8d7c",
		Type:      string(points.InvestmentRuche),
		Status:    models.ProjectStatusActive,
	}
	require.NoError(t, db.Create(&project).Error)

	inv := models.Investment{
		UserID:          user.ID,
		ProjectID:       project.ID,
		Type:            project.Type,
		AmountEUR:       50,
		BonusPercentage: 30,
		Status:          models.InvestmentStatusPending,
	}
	require.NoError(t, db.Create(&inv).Error)

	calc, err := ConfirmInvestment(db, &inv)
	require.NoError(t, err)
	require.NotNil(t, calc)
	assert.Equal(t, 50, calc.BasePoints)
	assert.Equal(t, 15, calc.BonusPoints)
	assert.Equal(t, 65, calc.TotalPoints)

	var fresh models.Investment
	require.NoError(t, db.First(&fresh, inv.ID).Error)
	assert.Equal(t, models.InvestmentStatusConfirmed, fresh.Status)
	assert.Equal(t, 65, fresh.PointsAwarded)
	require.NotNil(t, fresh.ConfirmedAt)

	var freshUser models.User
	require.NoError(t, db.First(&freshUser, user.ID).Error)
	assert.Equal(t, 65, freshUser.PointsBalance)

	var freshProject models.Project
	require.NoError(t, db.First(&freshProject, project.ID).Error)
	assert.Equal(t, 50.0, freshProject.CollectedEUR)

	// Une relivraison du webhook ne recrédite pas.
	calc, err = ConfirmInvestment(db, &fresh)
	require.NoError(t, err)
	assert.Nil(t, calc)

	require.NoError(t, db.First(&freshUser, user.ID).Error)
	assert.Equal(t, 65, freshUser.PointsBalance)
}

func TestRecordSubscriptionCycle(t *testing.T) {
	db := testDB(t)

	user := models.User{Email: "lea@example.com"}
	require.NoError(t, db.Create(&user).Error)

	sub := models.Subscription{
		UserID:           user.ID,
		Type:             string(points.SubscriptionAmbassadeurStandard),
		BillingFrequency: string(points.FrequencyMonthly),
		AmountEUR:        18,
		BonusPercentage:  20,
		Status:           models.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(&sub).Error)

	calc, err := RecordSubscriptionCycle(db, &sub, "invoice:in_001")
	require.NoError(t, err)
	require.NotNil(t, calc)
	assert.Equal(t, 22, calc.TotalPoints)

	var freshUser models.User
	require.NoError(t, db.First(&freshUser, user.ID).Error)
	assert.Equal(t, 22, freshUser.PointsBalance)

	// Deux échéances distinctes créditent deux fois.
	calc, err = RecordSubscriptionCycle(db, &sub, "invoice:in_002")
	require.NoError(t, err)
	require.NotNil(t, calc)
	require.NoError(t, db.First(&freshUser, user.ID).Error)
	assert.Equal(t, 44, freshUser.PointsBalance)
}

// Stripe relivre les webhooks en cas de timeout : la même facture reçue deux
// fois ne doit créditer qu'une fois.
func TestRecordSubscriptionCycle_SameInvoiceCreditedOnce(t *testing.T) {
	db := testDB(t)

	user := models.User{Email: "jules@example.com"}
	require.NoError(t, db.Create(&user).Error)

	sub := models.Subscription{
		UserID:           user.ID,
		Type:             string(points.SubscriptionAmbassadeurStandard),
		BillingFrequency: string(points.FrequencyMonthly),
		AmountEUR:        18,
		BonusPercentage:  20,
		Status:           models.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(&sub).Error)

	calc, err := RecordSubscriptionCycle(db, &sub, "invoice:in_100")
	require.NoError(t, err)
	require.NotNil(t, calc)

	calc, err = RecordSubscriptionCycle(db, &sub, "invoice:in_100")
	require.NoError(t, err)
	assert.Nil(t, calc)

	var freshUser models.User
	require.NoError(t, db.First(&freshUser, user.ID).Error)
	assert.Equal(t, 22, freshUser.PointsBalance)

	var count int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordSubscriptionCycle_RequiresReference(t *testing.T) {
	db := testDB(t)

	user := models.User{Email: "emma@example.com"}
	require.NoError(t, db.Create(&user).Error)

	sub := models.Subscription{
		UserID:           user.ID,
		Type:             string(points.SubscriptionAmbassadeurStandard),
		BillingFrequency: string(points.FrequencyMonthly),
		AmountEUR:        18,
		BonusPercentage:  20,
		Status:           models.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(&sub).Error)

	_, err := RecordSubscriptionCycle(db, &sub, "")
	assert.Error(t, err)
}

// Un échec après le crédit (ici la table des investissements disparaît sous
// la transaction) doit tout annuler : ni points crédités, ni ligne au grand
// livre, investissement toujours en attente.
func TestConfirmInvestment_RollsBackOnFailure(t *testing.T) {
	db := testDB(t)

	user := models.User{Email: "theo@example.com"}
	require.NoError(t, db.Create(&user).Error)
	partner := models.Partner{Name: "HABEEBEE", Slug: "habeebee-5e6f7a8b"}
	require.NoError(t, db.Create(&partner).Error)
	project := models.Project{
		PartnerID: partner.ID,
		Name:      "Ruches de Liège",
		Slug:      "ruches-de-liege-1c2d3e4f",
		Type:      string(points.InvestmentRuche),
		Status:    models.ProjectStatusActive,
	}
	require.NoError(t, db.Create(&project).Error)

	inv := models.Investment{
		UserID:          user.ID,
		ProjectID:       project.ID,
		Type:            project.Type,
		AmountEUR:       50,
		BonusPercentage: 30,
		Status:          models.InvestmentStatusPending,
	}
	require.NoError(t, db.Create(&inv).Error)

	require.NoError(t, db.Migrator().DropTable(&models.Investment{}))

	_, err := ConfirmInvestment(db, &inv)
	require.Error(t, err)

	var freshUser models.User
	require.NoError(t, db.First(&freshUser, user.ID).Error)
	assert.Equal(t, 0, freshUser.PointsBalance)

	var count int64
	db.Model(&models.PointsTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	var freshProject models.Project
	require.NoError(t, db.First(&freshProject, project.ID).Error)
	assert.Equal(t, 0.0, freshProject.CollectedEUR)
}

func TestRecordSubscriptionCycle_Cancelled(t *testing.T) {
	db := testDB(t)

	user := models.User{Email: "nina@example.com"}
	require.NoError(t, db.Create(&user).Error)

	sub := models.Subscription{
		UserID:           user.ID,
		Type:             string(points.SubscriptionAmbassadeurPremium),
		BillingFrequency: string(points.FrequencyAnnual),
		AmountEUR:        320,
		BonusPercentage:  40,
		Status:           models.SubscriptionStatusCancelled,
	}
	require.NoError(t, db.Create(&sub).Error)

	_, err := RecordSubscriptionCycle(db, &sub, "invoice:in_200")
	assert.Error(t, err)
}
