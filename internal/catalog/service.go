package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arbora-home/cart-api/internal/pricing"
)

// ErrNotFound indicates the requested catalog item does not exist.
var ErrNotFound = errors.New("catalog item not found")

// Source is the read-only item lookup the cart consumes.
type Source interface {
	ItemByID(ctx context.Context, id int64) (Item, error)
}

// Service reads catalog items from Postgres with a Redis cache in front.
type Service struct {
	Pool         *pgxpool.Pool
	Cache        *Cache
	DefaultLimit int
	MaxLimit     int
}

// ListParams filter and paginate the catalog listing.
type ListParams struct {
	Category string
	Page     int
	Limit    int
}

const itemColumns = `id, name, price, original_price, category, image_url, in_stock, stock_qty`

// ItemByID returns a single catalog item.
func (s *Service) ItemByID(ctx context.Context, id int64) (Item, error) {
	if s == nil || s.Pool == nil {
		return Item{}, errors.New("catalog service not configured")
	}
	cacheKey := fmt.Sprintf("catalog:item:%d", id)
	var cached Item
	if ok, err := s.Cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
		cached.Normalize()
		return cached, nil
	}

	row := s.Pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM products WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("load catalog item %d: %w", id, err)
	}
	_ = s.Cache.SetJSON(ctx, cacheKey, item)
	return item, nil
}

// List returns a page of catalog items and the total match count.
func (s *Service) List(ctx context.Context, params ListParams) ([]Item, int, error) {
	if s == nil || s.Pool == nil {
		return nil, 0, errors.New("catalog service not configured")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = s.DefaultLimit
	}
	if s.MaxLimit > 0 && limit > s.MaxLimit {
		limit = s.MaxLimit
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	where := ""
	args := []any{}
	if params.Category != "" {
		where = ` WHERE category = $1`
		args = append(args, params.Category)
	}

	var total int
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count catalog items: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY id LIMIT $%d OFFSET $%d`,
		itemColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item     Item
		original *int64
	)
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&original,
		&item.Category,
		&item.ImageURL,
		&item.InStock,
		&item.StockQty,
	); err != nil {
		return Item{}, err
	}
	if original != nil {
		v := pricing.Money(*original)
		item.OriginalPrice = &v
	}
	item.Normalize()
	return item, nil
}
