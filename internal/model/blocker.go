package model

// Blocker is a predicted obstacle to completing a stated task, paired with a
// suggested way around it.
type Blocker struct {
	Blocker  string `json:"blocker"`
	Solution string `json:"solution"`
}
