package model

// ItemTemplate is a catalog entry inside a case. CatalogID is stable
// across draws; granted items get their own uuid.
type ItemTemplate struct {
	CatalogID int    `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Value     int    `json:"value"`
}

// Case is a fixed catalog entry: a priced pool of item templates
// drawn from uniformly. Price 0 means free.
type Case struct {
	Name  string         `json:"name"`
	Price int            `json:"price"`
	Items []ItemTemplate `json:"items"`
}
