package models

// SampleRequests returns the seed request set used for local development and
// tests, covering every status and a spread of locations across Japan.
func SampleRequests() []Request {
	return []Request{
		{
			ID:          1,
			Location:    &Coordinate{Latitude: 35.6895, Longitude: 139.6917},
			Status:      StatusOpen,
			PlaceName:   "新宿駅東口",
			Description: "駅前の混雑状況がわかる写真1枚ください",
		},
		{
			ID:          2,
			Location:    &Coordinate{Latitude: 34.6937, Longitude: 135.5023},
			Status:      StatusOpen,
			PlaceName:   "梅田駅周辺",
			Description: "コンビニ前の様子を確認したいです",
		},
		{
			ID:          3,
			Location:    &Coordinate{Latitude: 35.1709, Longitude: 136.8819},
			Status:      StatusInProgress,
			PlaceName:   "鶴舞公園",
			Description: "満開の桜を撮影してほしいです",
		},
		{
			ID:          4,
			Location:    &Coordinate{Latitude: 34.0459, Longitude: 134.5593},
			Status:      StatusCompleted,
			PlaceName:   "眉山ロープウェイ",
			Description: "夕方の空の写真を撮ってください",
		},
		{
			ID:          5,
			Location:    &Coordinate{Latitude: 43.0642, Longitude: 141.3468},
			Status:      StatusOpen,
			PlaceName:   "大通公園",
			Description: "公園の遊具の安全点検が必要です",
		},
		{
			ID:          6,
			Location:    &Coordinate{Latitude: 26.2124, Longitude: 127.6792},
			Status:      StatusOpen,
			PlaceName:   "那覇市国際通り",
			Description: "イベント会場の混雑状況を確認してください",
		},
	}
}
