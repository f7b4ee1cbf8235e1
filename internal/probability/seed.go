package probability

// SeedSource Наблюдаемые значения, из которых собирается сид спина.
//
// Сид НЕ является криптографически стойким: все источники либо известны,
// либо предсказуемы до фиксации спина. Если непредсказуемость важна,
// сид нужно получать из верифицируемой случайной функции (VRF) и передавать в Select напрямую.
type SeedSource struct {
	UnixTime     int64
	Participant  []byte
	TicketsSold  uint64
	VaultBalance uint64
	Sequence     uint64
}

// FoldSeed сворачивает источники через XOR. Из идентификатора участника берутся первые 8 байт.
func FoldSeed(src SeedSource) uint64 {
	var participant uint64
	for i, b := range src.Participant {
		if i == 8 {
			break
		}
		participant ^= uint64(b) << (uint(i) * 8)
	}

	return uint64(src.UnixTime) ^ participant ^ src.TicketsSold ^ src.VaultBalance ^ src.Sequence
}
