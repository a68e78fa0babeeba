package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    uid             TEXT PRIMARY KEY,
    email           TEXT NOT NULL DEFAULT '',
    first_name      TEXT NOT NULL DEFAULT '',
    last_name       TEXT NOT NULL DEFAULT '',
    monthly_income  TEXT NOT NULL DEFAULT '0',
    currency        TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    transaction_id  TEXT PRIMARY KEY,
    uid             TEXT NOT NULL,
    type            TEXT NOT NULL,
    category        TEXT NOT NULL,
    date            TEXT NOT NULL,
    description     TEXT NOT NULL,
    value           TEXT NOT NULL,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debts (
    debt_id             TEXT PRIMARY KEY,
    uid                 TEXT NOT NULL,
    name                TEXT NOT NULL,
    total_value         TEXT NOT NULL,
    monthly_installment TEXT NOT NULL,
    paid_value          TEXT NOT NULL,
    start_date          TEXT NOT NULL,
    created_at          TEXT NOT NULL,
    updated_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debt_payments (
    payment_id      TEXT PRIMARY KEY,
    uid             TEXT NOT NULL,
    debt_id         TEXT NOT NULL REFERENCES debts(debt_id) ON DELETE CASCADE,
    value           TEXT NOT NULL,
    date            TEXT NOT NULL,
    created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    goal_id         TEXT PRIMARY KEY,
    uid             TEXT NOT NULL,
    name            TEXT NOT NULL,
    target_value    TEXT NOT NULL,
    current_value   TEXT NOT NULL,
    deadline        TEXT NOT NULL DEFAULT '',
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_uid_date ON transactions(uid, date);
CREATE INDEX IF NOT EXISTS idx_debts_uid ON debts(uid);
CREATE INDEX IF NOT EXISTS idx_payments_debt ON debt_payments(uid, debt_id);
CREATE INDEX IF NOT EXISTS idx_goals_uid ON goals(uid);
`
