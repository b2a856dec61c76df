package repository

import (
	"context"
	"database/sql"
	"errors"
)

// DefaultImagePath is stored for vehicles submitted without an image or
// thumbnail path. The templates treat it as "render the placeholder".
const DefaultImagePath = "No Image Available"

// Vehicle mirrors the 'inventory' table. ClassificationName is populated by
// the queries that join against classification for display purposes and is
// never written back.
type Vehicle struct {
	ID                 uint64         // inventory.inv_id
	VIN                string         // inventory.inv_vin
	Make               string         // inventory.inv_make
	Model              string         // inventory.inv_model
	Year               string         // inventory.inv_year (4-digit)
	Description        string         // inventory.inv_description
	Image              string         // inventory.inv_image
	Thumbnail          string         // inventory.inv_thumbnail
	Price              float64        // inventory.inv_price
	Miles              sql.NullInt64  // inventory.inv_miles (optional)
	Color              sql.NullString // inventory.inv_color (optional)
	ClassificationID   uint64         // inventory.classification_id
	ClassificationName string         // classification.classification_name (join only)
}

// InventoryRepo encapsulates all database queries related to vehicles.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo constructs an InventoryRepo with the provided DB handle.
func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// ListByClassification returns all vehicles in a classification, joined with
// the classification name. An empty slice is a valid result and means the
// classification exists but holds no vehicles yet.
func (r *InventoryRepo) ListByClassification(ctx context.Context, classificationID uint64) ([]*Vehicle, error) {
	const q = `SELECT i.inv_id, i.inv_vin, i.inv_make, i.inv_model, i.inv_year,
	                  i.inv_description, i.inv_image, i.inv_thumbnail, i.inv_price,
	                  i.inv_miles, i.inv_color, i.classification_id, c.classification_name
	           FROM inventory AS i
	           JOIN classification AS c ON i.classification_id = c.classification_id
	           WHERE i.classification_id = ?
	           ORDER BY i.inv_make, i.inv_model`
	rows, err := r.db.QueryContext(ctx, q, classificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Vehicle
	for rows.Next() {
		v := new(Vehicle)
		if err := rows.Scan(&v.ID, &v.VIN, &v.Make, &v.Model, &v.Year,
			&v.Description, &v.Image, &v.Thumbnail, &v.Price,
			&v.Miles, &v.Color, &v.ClassificationID, &v.ClassificationName); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single vehicle by its inventory id. It returns
// ErrVehicleNotFound if no row is found.
func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (*Vehicle, error) {
	const q = `SELECT i.inv_id, i.inv_vin, i.inv_make, i.inv_model, i.inv_year,
	                  i.inv_description, i.inv_image, i.inv_thumbnail, i.inv_price,
	                  i.inv_miles, i.inv_color, i.classification_id, c.classification_name
	           FROM inventory AS i
	           JOIN classification AS c ON i.classification_id = c.classification_id
	           WHERE i.inv_id = ?`
	var v Vehicle
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.VIN, &v.Make, &v.Model, &v.Year,
		&v.Description, &v.Image, &v.Thumbnail, &v.Price,
		&v.Miles, &v.Color, &v.ClassificationID, &v.ClassificationName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Create inserts a new vehicle and populates v.ID with the generated id.
// Field defaults are applied here so every insert path stores a complete
// record: empty image or thumbnail paths become DefaultImagePath, while
// Miles and Color stay NULL unless provided. The foreign key on
// classification_id is enforced by the database at write time.
func (r *InventoryRepo) Create(ctx context.Context, v *Vehicle) error {
	if v.Image == "" {
		v.Image = DefaultImagePath
	}
	if v.Thumbnail == "" {
		v.Thumbnail = DefaultImagePath
	}
	const q = `INSERT INTO inventory
	           (inv_vin, inv_make, inv_model, inv_year, inv_description,
	            inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		v.VIN, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// Update replaces every mutable field of the vehicle keyed by v.ID. MySQL
// reports zero affected rows both for a missing id and for a no-op update
// with identical values, so a follow-up existence check keeps repeated
// identical submissions succeeding while a deleted id still surfaces
// ErrVehicleNotFound.
func (r *InventoryRepo) Update(ctx context.Context, v *Vehicle) error {
	const q = `UPDATE inventory
	           SET inv_vin = ?, inv_make = ?, inv_model = ?, inv_year = ?,
	               inv_description = ?, inv_image = ?, inv_thumbnail = ?,
	               inv_price = ?, inv_miles = ?, inv_color = ?, classification_id = ?
	           WHERE inv_id = ?`
	if v.Image == "" {
		v.Image = DefaultImagePath
	}
	if v.Thumbnail == "" {
		v.Thumbnail = DefaultImagePath
	}
	res, err := r.db.ExecContext(ctx, q,
		v.VIN, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists uint64
		err := r.db.QueryRowContext(ctx,
			"SELECT inv_id FROM inventory WHERE inv_id = ?", v.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVehicleNotFound
		}
		return err
	}
	return nil
}

// Delete removes a vehicle by id. Deleting an id that does not exist
// reports ErrVehicleNotFound rather than succeeding silently.
func (r *InventoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE inv_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
