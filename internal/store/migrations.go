package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	title              TEXT NOT NULL CHECK(length(trim(title)) > 0),
	deadline           DATETIME NOT NULL,
	priority           TEXT NOT NULL DEFAULT 'Medium' CHECK(priority IN ('High', 'Medium', 'Low')),
	notes              TEXT NOT NULL DEFAULT '',
	category           TEXT NOT NULL DEFAULT '',
	tags               TEXT NOT NULL DEFAULT '[]',
	completed          INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	completed_at       DATETIME,
	created_by         TEXT NOT NULL DEFAULT '',
	assigned_to        TEXT NOT NULL DEFAULT '',
	created_at         DATETIME NOT NULL,
	company_code       TEXT NOT NULL DEFAULT '',
	source_document_id TEXT
);

CREATE TABLE IF NOT EXISTS labels (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	color        TEXT NOT NULL DEFAULT '',
	company_code TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(company_code, name)
);

CREATE TABLE IF NOT EXISTS employees (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL DEFAULT '',
	department   TEXT NOT NULL DEFAULT '',
	position     TEXT NOT NULL DEFAULT '',
	company_code TEXT NOT NULL DEFAULT '',
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_settings (
	company_code               TEXT PRIMARY KEY,
	default_priority           TEXT NOT NULL DEFAULT 'Medium',
	default_deadline           TEXT NOT NULL DEFAULT 'today',
	default_sort               TEXT NOT NULL DEFAULT 'manual',
	auto_delete_completed_days INTEGER NOT NULL DEFAULT 0,
	max_overdue_tasks          INTEGER NOT NULL DEFAULT 0
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_tasks_company_assigned ON tasks(company_code, assigned_to);
CREATE INDEX IF NOT EXISTS idx_tasks_company_created_by ON tasks(company_code, created_by);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);
CREATE INDEX IF NOT EXISTS idx_employees_company ON employees(company_code);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
