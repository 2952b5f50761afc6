package cmd

import (
	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/member"
)

var defaultMembers = []struct {
	number string
	name   string
}{
	{"12345678", "山田 太郎"},
	{"87654321", "佐藤 花子"},
	{"11112222", "鈴木 次郎"},
}

// DefaultMembers returns the active members used to seed a fresh store.
func DefaultMembers() ([]*member.Member, error) {
	members := make([]*member.Member, 0, len(defaultMembers))
	for _, seed := range defaultMembers {
		number, err := kernel.NewDigitCode("member number", seed.number)
		if err != nil {
			return nil, err
		}

		m, err := member.RestoreMember(number, seed.name, true)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}
