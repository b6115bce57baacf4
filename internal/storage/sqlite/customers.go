package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/storage"
)

type customerRepository struct {
	uow *unitOfWork
}

var _ storage.CustomerRepository = (*customerRepository)(nil)

// Add stages inserts for the person, the customer, and any carried receipts.
// Missing IDs are assigned here so callers see them immediately; the person
// row shares the customer's ID.
func (r *customerRepository) Add(c *entity.Customer) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Person.ID = c.ID
	for i := range c.Receipts {
		rec := &c.Receipts[i]
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CustomerID = c.ID
		for j := range rec.Details {
			det := &rec.Details[j]
			if det.ID == uuid.Nil {
				det.ID = uuid.New()
			}
			det.ReceiptID = rec.ID
		}
	}

	cust := *c
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO persons (id, name, surname, birth_date) VALUES (?, ?, ?, ?)",
			cust.Person.ID.String(), cust.Person.Name, cust.Person.Surname, cust.Person.BirthDate.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO customers (id, discount) VALUES (?, ?)",
			cust.ID.String(), cust.DiscountValue.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer: %w", err)
		}

		for _, rec := range cust.Receipts {
			if err := insertReceipt(ctx, tx, &rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update stages updates of the person and customer rows. Absent rows are a
// no-op, consistent with best-effort sync at this layer.
func (r *customerRepository) Update(c *entity.Customer) {
	cust := *c
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"UPDATE persons SET name = ?, surname = ?, birth_date = ? WHERE id = ?",
			cust.Person.Name, cust.Person.Surname, cust.Person.BirthDate.Unix(), cust.Person.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE customers SET discount = ? WHERE id = ?",
			cust.DiscountValue.String(), cust.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		return nil
	})
}

// DeleteByID stages removal of the customer, its person record, and (via
// cascade) its receipts and their details.
func (r *customerRepository) DeleteByID(id uuid.UUID) {
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		// The customers row cascades from persons; deleting the person row
		// removes the whole ownership chain.
		if _, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id.String()); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return nil
	})
}

// GetByID retrieves the customer and its person record without receipts.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, err := scanCustomer(r.uow.db.QueryRowContext(ctx,
		`SELECT c.id, c.discount, p.name, p.surname, p.birth_date
		 FROM customers c JOIN persons p ON p.id = c.id
		 WHERE c.id = ?`, id.String(),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return c, nil
}

// GetByIDWithDetails retrieves the customer with receipts and detail lines.
func (r *customerRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	if err := r.loadReceipts(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetAllWithDetails retrieves every customer with receipts and detail lines.
func (r *customerRepository) GetAllWithDetails(ctx context.Context) ([]entity.Customer, error) {
	rows, err := r.uow.db.QueryContext(ctx,
		`SELECT c.id, c.discount, p.name, p.surname, p.birth_date
		 FROM customers c JOIN persons p ON p.id = c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	defer rows.Close()

	var customers []entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	for i := range customers {
		if err := r.loadReceipts(ctx, &customers[i]); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

// loadReceipts attaches the customer's receipts and their detail lines.
func (r *customerRepository) loadReceipts(ctx context.Context, c *entity.Customer) error {
	rows, err := r.uow.db.QueryContext(ctx,
		"SELECT id, operation_date FROM receipts WHERE customer_id = ?",
		c.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to get receipts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec    entity.Receipt
			rawID  string
			opDate int64
		)
		if err := rows.Scan(&rawID, &opDate); err != nil {
			return fmt.Errorf("failed to scan receipt: %w", err)
		}
		rec.ID, err = uuid.Parse(rawID)
		if err != nil {
			return fmt.Errorf("failed to parse receipt id: %w", err)
		}
		rec.CustomerID = c.ID
		rec.OperationDate = time.Unix(opDate, 0).UTC()
		c.Receipts = append(c.Receipts, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate receipts: %w", err)
	}

	for i := range c.Receipts {
		if err := r.loadDetails(ctx, &c.Receipts[i]); err != nil {
			return err
		}
	}
	return nil
}

// loadDetails attaches a receipt's detail lines.
func (r *customerRepository) loadDetails(ctx context.Context, rec *entity.Receipt) error {
	rows, err := r.uow.db.QueryContext(ctx,
		"SELECT id, product_id, unit_price, quantity FROM receipt_details WHERE receipt_id = ?",
		rec.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to get receipt details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			det      entity.ReceiptDetail
			rawID    string
			rawProd  string
			rawPrice string
		)
		if err := rows.Scan(&rawID, &rawProd, &rawPrice, &det.Quantity); err != nil {
			return fmt.Errorf("failed to scan receipt detail: %w", err)
		}
		det.ID, err = uuid.Parse(rawID)
		if err != nil {
			return fmt.Errorf("failed to parse receipt detail id: %w", err)
		}
		det.ProductID, err = uuid.Parse(rawProd)
		if err != nil {
			return fmt.Errorf("failed to parse product id: %w", err)
		}
		det.UnitPrice, err = parseDecimal(rawPrice)
		if err != nil {
			return err
		}
		det.ReceiptID = rec.ID
		rec.Details = append(rec.Details, det)
	}
	return rows.Err()
}

// insertReceipt inserts a receipt and its detail lines.
func insertReceipt(ctx context.Context, tx *sql.Tx, rec *entity.Receipt) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO receipts (id, customer_id, operation_date) VALUES (?, ?, ?)",
		rec.ID.String(), rec.CustomerID.String(), rec.OperationDate.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for _, det := range rec.Details {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO receipt_details (id, receipt_id, product_id, unit_price, quantity) VALUES (?, ?, ?, ?, ?)",
			det.ID.String(), rec.ID.String(), det.ProductID.String(), det.UnitPrice.String(), det.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to insert receipt detail: %w", err)
		}
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCustomer reads one joined customer+person row.
func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var (
		c         entity.Customer
		rawID     string
		rawDisc   string
		birthDate int64
	)
	if err := row.Scan(&rawID, &rawDisc, &c.Person.Name, &c.Person.Surname, &birthDate); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse customer id: %w", err)
	}
	c.ID = id
	c.Person.ID = id
	c.Person.BirthDate = time.Unix(birthDate, 0).UTC()
	c.DiscountValue, err = parseDecimal(rawDisc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
