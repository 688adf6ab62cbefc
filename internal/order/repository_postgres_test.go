package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "userId", "userEmail", "items", "subtotal", "shippingCost",
		"totalAmount", "shippingMethod", "paymentMethod", "paymentStatus",
		"orderStatus", "shippingDetails", "paymentId", "createdAt", "updatedAt",
	})
}

func sampleRow(rows *sqlmock.Rows, id, status string) *sqlmock.Rows {
	return rows.AddRow(
		id, 42, "buyer@test.com",
		[]byte(`[{"productId":1,"name":"Whey","price":14500,"quantity":2}]`),
		29000.0, 0.0, 29000.0, "pickup", "bank-transfer", "pending",
		status, []byte(`{"fullName":"Ana","email":"a@test.com","phone":"1"}`),
		nil, "2026-01-10T12:00:00Z", "2026-01-10T12:00:00Z",
	)
}

func TestPostgresListAll_StatusFilterAndPagination(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sampleRow(orderRows(), "ord-1", "shipped")
	mock.ExpectQuery(`SELECT .* FROM orders WHERE "orderStatus" = \$1 ORDER BY "createdAt" DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("shipped", 20, 40).
		WillReturnRows(rows)

	got, err := repo.ListAll(AdminFilter{Status: "shipped", Limit: 20, Offset: 40})
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 1 || got[0].OrderStatus != "shipped" {
		t.Fatalf("unexpected result %+v", got)
	}
	if len(got[0].Items) != 1 || got[0].Items[0].Price != 14500 {
		t.Fatalf("items jsonb not decoded: %+v", got[0].Items)
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

	mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(orderRows())

	if _, err := repo.GetByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresUpdatePaymentStatus_KeepsExistingPaymentID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec(`UPDATE orders`).
		WithArgs("approved", "", "2026-01-11T09:00:00Z", "ord-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
		WithArgs("ord-1").
		WillReturnRows(sampleRow(orderRows(), "ord-1", "processing"))

	if _, err := repo.UpdatePaymentStatus("ord-1", "approved", "", "2026-01-11T09:00:00Z"); err != nil {
		t.Fatalf("UpdatePaymentStatus failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
