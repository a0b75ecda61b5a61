package service

import "errors"

// Ошибки политики лайков
var (
	ErrInvalidCount    = errors.New("невалидное значение count")
	ErrMaxLikesReached = errors.New("достигнут максимум лайков")
)

// LikePolicy решает, сколько лайков реально применить к паре (посетитель, пост).
//
// Правило для count: целое число в диапазоне [1, maxLikes]. Верхняя граница
// защищает от одного раздутого запроса независимо от накопленного состояния.
// Запрос с валидным count, превышающим остаток до потолка, не отклоняется,
// а урезается до остатка: так двойные отправки клиента сходятся к потолку.
type LikePolicy struct {
	maxLikes int64
}

func NewLikePolicy(maxLikes int) *LikePolicy {
	return &LikePolicy{maxLikes: int64(maxLikes)}
}

// MaxLikes возвращает потолок лайков на посетителя
func (p *LikePolicy) MaxLikes() int64 {
	return p.maxLikes
}

// Increment вычисляет инкремент для применения в хранилище
func (p *LikePolicy) Increment(currentVisitorLikes, requested int64) (int64, error) {
	if requested < 1 || requested > p.maxLikes {
		return 0, ErrInvalidCount
	}

	if currentVisitorLikes >= p.maxLikes {
		return 0, ErrMaxLikesReached
	}

	headroom := p.maxLikes - currentVisitorLikes
	if requested > headroom {
		requested = headroom
	}

	return requested, nil
}
