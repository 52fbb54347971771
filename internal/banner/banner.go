package banner

// Banner is a hero slide on the home page.
type Banner struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Ord   int    `json:"-"`
}

var Defaults = []Banner{
	{ID: "1", Image: "https://images.unsplash.com/photo-1483985988355-763728e1935b?w=1200&q=80", Title: "Big Sale", Link: "/category/sale", Ord: 3},
	{ID: "2", Image: "https://images.unsplash.com/photo-1469334031218-e382a71b716b?w=1200&q=80", Title: "New Arrivals", Link: "/category/new", Ord: 2},
	{ID: "3", Image: "https://images.unsplash.com/photo-1490481651871-ab68de25d43d?w=1200&q=80", Title: "Trending Fashion", Link: "/category/trending", Ord: 1},
}
