package product

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"productId", "name", "description", "price", "stock", "category",
		"subcategory", "brand", "weight", "flavors", "image", "images",
		"isOnSale", "salePrice", "isCombo", "isFeatured", "tags", "createdAt", "updatedAt",
	})
}

func TestPostgresList_FilterAndPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := productRows().AddRow(
		2, "Creatine", "pure monohydrate", 1200.0, 30, "creatine",
		nil, "Star", nil, pq.StringArray{}, "/img/creatine.jpg", pq.StringArray{},
		true, 900.0, false, false, pq.StringArray{"strength"}, "t", "u",
	)
	mock.ExpectQuery(`SELECT .* FROM products WHERE category = \$1.*LIMIT \$2 OFFSET \$3`).
		WithArgs("creatine", 10, 5).
		WillReturnRows(rows)

	got, err := repo.List(Filter{Category: "creatine", Limit: 10, Offset: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Creatine" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got[0].SalePrice == nil || *got[0].SalePrice != 900 {
		t.Fatalf("sale price not scanned: %+v", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT .* FROM products WHERE "productId" = \$1`).
		WithArgs(77).
		WillReturnRows(productRows())

	if _, err := repo.GetByID(77); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresDecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE products SET stock = stock - \$1`).
		WithArgs(2, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DecrementStock(5, 2); err != nil {
		t.Fatalf("DecrementStock failed: %v", err)
	}

	// depleted stock: update touches no rows, product still exists
	mock.ExpectExec(`UPDATE products SET stock = stock - \$1`).
		WithArgs(99, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	rows := productRows().AddRow(
		5, "Whey", "d", 100.0, 1, "proteins",
		nil, nil, nil, pq.StringArray{}, "/img/w.jpg", pq.StringArray{},
		false, nil, false, false, pq.StringArray{}, "t", "u",
	)
	mock.ExpectQuery(`SELECT .* FROM products WHERE "productId" = \$1`).
		WithArgs(5).
		WillReturnRows(rows)

	if err := repo.DecrementStock(5, 99); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
