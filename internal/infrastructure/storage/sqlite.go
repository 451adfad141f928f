package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"recipe-nutrition/internal/pkg/common"
)

// Storage SQLite 儲存層，負責食譜與本地食材目錄
type Storage struct {
	db *sql.DB
}

// NewStorage 開啟資料庫並初始化 schema
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close 關閉資料庫
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping 檢查資料庫連線（就緒檢查用）
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS recipes (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        steps TEXT NOT NULL DEFAULT '[]',
        servings INTEGER NOT NULL DEFAULT 2,
        total_calories INTEGER NOT NULL DEFAULT 0,
        protein INTEGER NOT NULL DEFAULT 0,
        carbs INTEGER NOT NULL DEFAULT 0,
        fat INTEGER NOT NULL DEFAULT 0,
        tags TEXT NOT NULL DEFAULT '[]',
        favorite INTEGER NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL,
        updated_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS recipe_ingredients (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        recipe_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        quantity REAL NOT NULL,
        FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS catalog_items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        calories REAL NOT NULL DEFAULT 0,
        protein REAL NOT NULL DEFAULT 0,
        carbs REAL NOT NULL DEFAULT 0,
        fat REAL NOT NULL DEFAULT 0,
        created_at DATETIME NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at);
    CREATE INDEX IF NOT EXISTS idx_recipes_favorite ON recipes(favorite);
    CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe_id ON recipe_ingredients(recipe_id);
    CREATE UNIQUE INDEX IF NOT EXISTS idx_catalog_items_name ON catalog_items(name COLLATE NOCASE);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveRecipe 儲存食譜與其食材列（同一交易）
func (s *Storage) SaveRecipe(ctx context.Context, recipe *common.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	steps, err := json.Marshal(recipe.Steps)
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}
	tags, err := json.Marshal(recipe.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	recipeQuery := `
        INSERT INTO recipes (id, title, description, steps, servings, total_calories, protein, carbs, fat, tags, favorite, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = tx.ExecContext(ctx, recipeQuery,
		recipe.ID, recipe.Title, recipe.Description, string(steps), recipe.Servings,
		recipe.TotalCalories, recipe.Macros.Protein, recipe.Macros.Carbs, recipe.Macros.Fat,
		string(tags), recipe.Favorite, recipe.CreatedAt, recipe.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	ingredientQuery := `
        INSERT INTO recipe_ingredients (recipe_id, position, name, quantity)
        VALUES (?, ?, ?, ?)
    `
	for i, ing := range recipe.Ingredients {
		if _, err := tx.ExecContext(ctx, ingredientQuery, recipe.ID, i, ing.Name, ing.Quantity); err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecipe 以 ID 取得單一食譜，不存在回傳 (nil, nil)
func (s *Storage) GetRecipe(ctx context.Context, id string) (*common.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, title, description, steps, servings, total_calories, protein, carbs, fat, tags, favorite, created_at, updated_at
        FROM recipes WHERE id = ?
    `, id)

	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if err := s.loadIngredients(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ListRecipes 依建立時間由新到舊列出食譜，onlyFavorites 時只列出收藏
func (s *Storage) ListRecipes(ctx context.Context, onlyFavorites bool) ([]*common.Recipe, error) {
	query := `
        SELECT id, title, description, steps, servings, total_calories, protein, carbs, fat, tags, favorite, created_at, updated_at
        FROM recipes
    `
	if onlyFavorites {
		query += " WHERE favorite = 1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []*common.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, recipe := range recipes {
		if err := s.loadIngredients(ctx, recipe); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// ToggleFavorite 切換收藏旗標並回傳更新後的食譜，不存在回傳 (nil, nil)
func (s *Storage) ToggleFavorite(ctx context.Context, id string) (*common.Recipe, error) {
	result, err := s.db.ExecContext(ctx, `
        UPDATE recipes SET favorite = 1 - favorite, updated_at = ? WHERE id = ?
    `, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return s.GetRecipe(ctx, id)
}

// scanner 同時覆蓋 *sql.Row 與 *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row scanner) (*common.Recipe, error) {
	var recipe common.Recipe
	var steps, tags string

	err := row.Scan(&recipe.ID, &recipe.Title, &recipe.Description, &steps, &recipe.Servings,
		&recipe.TotalCalories, &recipe.Macros.Protein, &recipe.Macros.Carbs, &recipe.Macros.Fat,
		&tags, &recipe.Favorite, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(steps), &recipe.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &recipe.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &recipe, nil
}

// loadIngredients 依 position 順序載入食材列
func (s *Storage) loadIngredients(ctx context.Context, recipe *common.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
        SELECT name, quantity FROM recipe_ingredients
        WHERE recipe_id = ? ORDER BY position ASC
    `, recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to load ingredients: %w", err)
	}
	defer rows.Close()

	recipe.Ingredients = []common.Ingredient{}
	for rows.Next() {
		var ing common.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Quantity); err != nil {
			return fmt.Errorf("failed to scan ingredient: %w", err)
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	return rows.Err()
}

// ListCatalog 依建立時間由新到舊列出食材目錄
func (s *Storage) ListCatalog(ctx context.Context) ([]*common.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, calories, protein, carbs, fat, created_at
        FROM catalog_items ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	defer rows.Close()

	items := []*common.CatalogItem{}
	for rows.Next() {
		var item common.CatalogItem
		err := rows.Scan(&item.ID, &item.Name, &item.Per100g.Calories, &item.Per100g.Protein,
			&item.Per100g.Carbs, &item.Per100g.Fat, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// CreateCatalogItem 新增食材目錄條目
func (s *Storage) CreateCatalogItem(ctx context.Context, item *common.CatalogItem) error {
	item.CreatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
        INSERT INTO catalog_items (name, calories, protein, carbs, fat, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, item.Name, item.Per100g.Calories, item.Per100g.Protein, item.Per100g.Carbs, item.Per100g.Fat, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert catalog item: %w", err)
	}

	item.ID, err = result.LastInsertId()
	return err
}

// DeleteCatalogItem 刪除食材目錄條目
func (s *Storage) DeleteCatalogItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}
	return nil
}

// FindCatalogProfile 以名稱不分大小寫查詢每 100 公克營養值
func (s *Storage) FindCatalogProfile(ctx context.Context, name string) (common.NutrientProfile, bool, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT calories, protein, carbs, fat FROM catalog_items
        WHERE name = ? COLLATE NOCASE LIMIT 1
    `, name)

	var profile common.NutrientProfile
	err := row.Scan(&profile.Calories, &profile.Protein, &profile.Carbs, &profile.Fat)
	if err == sql.ErrNoRows {
		return common.NutrientProfile{}, false, nil
	}
	if err != nil {
		return common.NutrientProfile{}, false, fmt.Errorf("failed to query catalog: %w", err)
	}
	return profile, true, nil
}
