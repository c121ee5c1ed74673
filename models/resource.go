package models

// IPCSection is reference data for an Indian Penal Code section.
type IPCSection struct {
	Section     string `bson:"section" json:"section"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Bailable    bool   `bson:"bailable" json:"bailable"`
	Punishment  string `bson:"punishment,omitempty" json:"punishment,omitempty"`
}
