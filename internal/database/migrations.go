package database

func (d *Database) RunMigrations() error {
	// Index observations, one row per (area, category, month)
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS market_hpi (
			area_name TEXT NOT NULL,
			property_category TEXT NOT NULL,
			report_month TEXT NOT NULL,
			hpi_index REAL NOT NULL,
			benchmark_price REAL,
			PRIMARY KEY (area_name, property_category, report_month)
		);
	`)
	if err != nil {
		return err
	}

	// Covering index for latest-month scans within a category
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_market_hpi_category_month
		ON market_hpi(property_category, report_month);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS estimates (
			id TEXT PRIMARY KEY,
			session_id TEXT,
			region TEXT,
			property_category TEXT,
			purchase_year INTEGER,
			purchase_month INTEGER,
			purchase_price REAL,
			estimated_value_low INTEGER,
			estimated_value_mid INTEGER,
			estimated_value_high INTEGER,
			equity_low INTEGER,
			equity_mid INTEGER,
			equity_high INTEGER,
			appreciation_factor REAL,
			data_era TEXT,
			original_loan_amount REAL,
			remaining_mortgage REAL,
			interest_rate_used REAL,
			net_equity REAL,
			created_at DATETIME
		);
	`)
	if err != nil {
		return err
	}

	return nil
}
