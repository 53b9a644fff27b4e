package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Cursor tokens are opaque to callers: a base64 wrapper around the
// last-seen row of a page. Two shapes exist, a composite (balance, id)
// cursor for balance-ordered customer listings and a plain id cursor for
// history listings ordered by identity.

// EncodeBalanceCursor builds a token from the balance and row id of the
// last item on a page.
func EncodeBalanceCursor(balance decimal.Decimal, id int64) string {
	tokenStr := fmt.Sprintf("%s|%d", balance.String(), id)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeBalanceCursor parses a composite token back into balance and id.
func DecodeBalanceCursor(token string) (decimal.Decimal, int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return decimal.Zero, 0, fmt.Errorf("invalid pagination token (split)")
	}

	balance, err := decimal.NewFromString(parts[0])
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("invalid pagination token (balance parse): %w", err)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("invalid pagination token (id parse): %w", err)
	}

	return balance, id, nil
}

// EncodeIDCursor builds a token holding a single row id.
func EncodeIDCursor(id int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeIDCursor parses an identity token back into a row id.
func DecodeIDCursor(token string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}

	id, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token (id parse): %w", err)
	}

	return id, nil
}
