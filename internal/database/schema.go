package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for every table the site needs. Statements are
// idempotent so Bootstrap can run on every startup and a fresh database
// serves immediately.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS classification (
		classification_id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		classification_name VARCHAR(64) NOT NULL,
		PRIMARY KEY (classification_id),
		UNIQUE KEY uq_classification_name (classification_name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS inventory (
		inv_id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		inv_vin           VARCHAR(32)  NOT NULL,
		inv_make          VARCHAR(64)  NOT NULL,
		inv_model         VARCHAR(64)  NOT NULL,
		inv_year          CHAR(4)      NOT NULL,
		inv_description   TEXT         NOT NULL,
		inv_image         VARCHAR(255) NOT NULL DEFAULT 'No Image Available',
		inv_thumbnail     VARCHAR(255) NOT NULL DEFAULT 'No Image Available',
		inv_price         DECIMAL(10,2) NOT NULL DEFAULT 0,
		inv_miles         INT UNSIGNED NULL,
		inv_color         VARCHAR(32)  NULL,
		classification_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (inv_id),
		KEY idx_inventory_classification (classification_id),
		CONSTRAINT fk_inventory_classification
			FOREIGN KEY (classification_id)
			REFERENCES classification (classification_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS account (
		account_id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		account_firstname VARCHAR(64)  NOT NULL,
		account_lastname  VARCHAR(64)  NOT NULL,
		account_email     VARCHAR(255) NOT NULL,
		account_password  VARCHAR(255) NOT NULL,
		PRIMARY KEY (account_id),
		UNIQUE KEY uq_account_email (account_email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Bootstrap creates the application tables when they do not exist yet.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
