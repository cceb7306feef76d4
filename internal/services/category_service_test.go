package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		category, err := svc.CreateCategory(user.ID, "Groceries", 400)
		testutil.AssertNoError(t, err)

		if category.ID == 0 {
			t.Fatal("expected non-zero category ID")
		}
		if category.Label != "Groceries" {
			t.Errorf("expected label Groceries, got %s", category.Label)
		}
		if category.DefaultAmount != 400 {
			t.Errorf("expected default amount 400, got %f", category.DefaultAmount)
		}
	})

	t.Run("empty_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateCategory(user.ID, "", 100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("propagates_to_open_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		open := testutil.CreateTestMonth(t, db, user.ID, 2026, 5)
		closed := testutil.CreateTestClosedMonth(t, db, user.ID, 2026, 4)

		category, err := svc.CreateCategory(user.ID, "Transport", 150)
		testutil.AssertNoError(t, err)

		var openAlloc models.MonthlyBudget
		err = db.Where("month_id = ? AND category_id = ?", open.ID, category.ID).First(&openAlloc).Error
		testutil.AssertNoError(t, err)
		if openAlloc.AllocatedAmount != 150 {
			t.Errorf("expected allocation seeded at 150, got %f", openAlloc.AllocatedAmount)
		}

		var closedCount int64
		db.Model(&models.MonthlyBudget{}).Where("month_id = ?", closed.ID).Count(&closedCount)
		if closedCount != 0 {
			t.Errorf("closed month should not receive an allocation, found %d", closedCount)
		}
	})

	t.Run("does_not_touch_other_users_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherMonth := testutil.CreateTestMonth(t, db, other.ID, 2026, 5)

		_, err := svc.CreateCategory(user.ID, "Dining", 200)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.MonthlyBudget{}).Where("month_id = ?", otherMonth.ID).Count(&count)
		if count != 0 {
			t.Errorf("other user's month should not receive an allocation, found %d", count)
		}
	})

	t.Run("skips_months_that_already_have_the_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2026, 5)

		category, err := svc.CreateCategory(user.ID, "Utilities", 90)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.MonthlyBudget{}).
			Where("month_id = ? AND category_id = ?", month.ID, category.ID).
			Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one allocation, got %d", count)
		}
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("sorted_by_label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateCategory(user.ID, "Zoo trips", 50)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user.ID, "Books", 30)
		testutil.AssertNoError(t, err)

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
		if categories[0].Label != "Books" || categories[1].Label != "Zoo trips" {
			t.Errorf("expected labels sorted ascending, got %s, %s", categories[0].Label, categories[1].Label)
		}
	})

	t.Run("excludes_other_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, other.ID)

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 0 {
			t.Errorf("expected no categories, got %d", len(categories))
		}
	})

	t.Run("excludes_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("deleted category should not be listed, got %d", len(categories))
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithDefault(t, db, user.ID, 100)

		label := "Renamed"
		updated, err := svc.UpdateCategory(user.ID, category.ID, &label, nil)
		testutil.AssertNoError(t, err)

		if updated.Label != "Renamed" {
			t.Errorf("expected label Renamed, got %s", updated.Label)
		}
		if updated.DefaultAmount != 100 {
			t.Errorf("default amount should be unchanged, got %f", updated.DefaultAmount)
		}
	})

	t.Run("default_amount_does_not_rewrite_existing_allocations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2026, 5)
		category, err := svc.CreateCategory(user.ID, "Rentals", 100)
		testutil.AssertNoError(t, err)

		amount := 999.0
		_, err = svc.UpdateCategory(user.ID, category.ID, nil, &amount)
		testutil.AssertNoError(t, err)

		var alloc models.MonthlyBudget
		err = db.Where("month_id = ? AND category_id = ?", month.ID, category.ID).First(&alloc).Error
		testutil.AssertNoError(t, err)
		if alloc.AllocatedAmount != 100 {
			t.Errorf("existing allocation should keep its value, got %f", alloc.AllocatedAmount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		label := "Nope"
		_, err := svc.UpdateCategory(user.ID, 99999, &label, nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, other.ID)

		label := "Hijack"
		_, err := svc.UpdateCategory(user.ID, category.ID, &label, nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("soft_delete_keeps_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		month := testutil.CreateTestMonth(t, db, user.ID, 2026, 5)
		category, err := svc.CreateCategory(user.ID, "Gone soon", 100)
		testutil.AssertNoError(t, err)
		item := testutil.CreateTestItem(t, db, month.ID, category.ID, 25)

		err = svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertNoError(t, err)

		// The row survives soft deletion and keeps its label.
		var deleted models.BudgetCategory
		err = db.Unscoped().First(&deleted, category.ID).Error
		testutil.AssertNoError(t, err)
		if deleted.Label != "Gone soon" {
			t.Errorf("expected label preserved, got %s", deleted.Label)
		}

		// Dependent rows are untouched.
		var gotItem models.Item
		err = db.First(&gotItem, item.ID).Error
		testutil.AssertNoError(t, err)
		var alloc models.MonthlyBudget
		err = db.Where("month_id = ? AND category_id = ?", month.ID, category.ID).First(&alloc).Error
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		user := testutil.CreateTestUser(t, db)
		err := svc.DeleteCategory(user.ID, 99999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
