package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/database"
	"github.com/Shuja06/School-ERP/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestDBResolver(t *testing.T) {
	db := openTestDB(t)
	res := NewDBResolver(db)

	student := models.Student{StudentID: "STU001", FullName: "Asha Verma", Class: "5", Section: "A"}
	require.NoError(t, db.Create(&student).Error)
	staff := models.Staff{StaffID: "EMP001", FullName: "Meena Iyer", Designation: "Teacher", Department: "Science", Salary: 30000}
	require.NoError(t, db.Create(&staff).Error)

	got, err := res.Student(student.UID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Asha Verma", got.FullName)

	st, err := res.Staff(staff.UID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "Science", st.Department)
}

func TestDBResolverMissingReferent(t *testing.T) {
	db := openTestDB(t)
	res := NewDBResolver(db)

	got, err := res.Student("no-such-uid")
	assert.NoError(t, err)
	assert.Nil(t, got)

	st, err := res.Staff("no-such-uid")
	assert.NoError(t, err)
	assert.Nil(t, st)
}

func TestEnrichPayments(t *testing.T) {
	db := openTestDB(t)
	res := NewDBResolver(db)

	student := models.Student{StudentID: "STU001", FullName: "Asha Verma", Class: "5", Section: "A"}
	require.NoError(t, db.Create(&student).Error)

	payments := []models.FeePayment{
		{StudentUID: student.UID, Amount: 1000, ReceiptNumber: "R1"},
		{StudentUID: "deleted", Amount: 500, ReceiptNumber: "R2"},
	}

	entries, err := EnrichPayments(payments, res)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NotNil(t, entries[0].Students)
	assert.Equal(t, "Asha Verma", entries[0].Students.FullName)
	assert.Equal(t, "5", entries[0].Students.Class)

	// a payment survives its student's deletion, with a null student block
	assert.Nil(t, entries[1].Students)
}
