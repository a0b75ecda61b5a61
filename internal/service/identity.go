package service

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// fallbackIPAddress используется, когда edge-слой не сообщил адрес клиента
	fallbackIPAddress = "0.0.0.0"

	// visitorIDLength длина усечённого hex-дайджеста.
	// Усечение сокращает колонку в БД; коллизии лишь склеивают
	// rate-limit-корзины, это не криптографическая граница.
	visitorIDLength = 16
)

// IdentityDeriver выводит стабильный анонимный идентификатор посетителя
// из его сетевого адреса и серверной соли.
type IdentityDeriver struct {
	salt string
}

func NewIdentityDeriver(salt string) *IdentityDeriver {
	return &IdentityDeriver{salt: salt}
}

// VisitorID детерминирован: одинаковые (адрес, соль) дают одинаковый id.
// Всегда возвращает строку из visitorIDLength hex-символов в нижнем регистре.
func (d *IdentityDeriver) VisitorID(ipAddress string) string {
	if ipAddress == "" {
		ipAddress = fallbackIPAddress
	}

	sum := sha256.Sum256([]byte(ipAddress + d.salt))
	return hex.EncodeToString(sum[:])[:visitorIDLength]
}
