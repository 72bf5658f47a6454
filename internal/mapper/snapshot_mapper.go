package mapper

import (
	"encoding/json"
	"sort"

	"followdiff-be/internal/entity"
	"followdiff-be/internal/model"
)

type SnapshotMapper struct{}

func NewSnapshotMapper() *SnapshotMapper {
	return &SnapshotMapper{}
}

func (m *SnapshotMapper) SnapshotToEntity(s *model.Snapshot) *entity.Snapshot {
	if s == nil {
		return nil
	}
	return &entity.Snapshot{
		Id:        s.Id,
		UserId:    s.UserId,
		Ts:        s.Ts,
		Following: decodeList(s.Following),
		Followers: decodeList(s.Followers),
	}
}

func (m *SnapshotMapper) SnapshotToModel(s *entity.Snapshot) *model.Snapshot {
	if s == nil {
		return nil
	}
	return &model.Snapshot{
		Id:        s.Id,
		UserId:    s.UserId,
		Ts:        s.Ts,
		Following: encodeList(s.Following),
		Followers: encodeList(s.Followers),
	}
}

func decodeList(raw []byte) []string {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

// encodeList stores the list sorted so the serialized form is deterministic.
func encodeList(names []string) []byte {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	raw, err := json.Marshal(sorted)
	if err != nil {
		return []byte("[]")
	}
	return raw
}
