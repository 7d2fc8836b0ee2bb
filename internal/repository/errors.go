package repository

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolationCode はPostgreSQLの一意制約違反のエラーコード。
const uniqueViolationCode = "23505"

// IsUniqueViolation はエラーが一意制約違反かどうかを判定する。
// 気分記録の同一日重複など、事前チェックをすり抜けた競合の最終検出に使用する。
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
