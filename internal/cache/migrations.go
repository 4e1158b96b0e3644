package cache

const schema = `
CREATE TABLE IF NOT EXISTS game_lookups (
    query      TEXT PRIMARY KEY,
    results    TEXT NOT NULL DEFAULT '[]',
    fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_game_lookups_fetched ON game_lookups(fetched_at);
`
