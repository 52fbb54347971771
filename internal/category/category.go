package category

// Category is a storefront tile linking to a filtered catalog page.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Ord   int    `json:"-"`
}

// Defaults is the starter set loaded into an empty store.
var Defaults = []Category{
	{ID: "1", Name: "Sarees", Image: "https://image.pollinations.ai/prompt/Indian%20woman%20wearing%20pink%20kanjivaram%20saree?width=500&height=500&seed=1&nologo=true", Ord: 8},
	{ID: "2", Name: "Kurtis", Image: "https://image.pollinations.ai/prompt/Indian%20girl%20wearing%20stylish%20kurti?width=500&height=500&seed=2&nologo=true", Ord: 7},
	{ID: "3", Name: "Western", Image: "https://image.pollinations.ai/prompt/Fashion%20model%20wearing%20modern%20dress?width=500&height=500&seed=3&nologo=true", Ord: 6},
	{ID: "4", Name: "Men", Image: "https://image.pollinations.ai/prompt/Handsome%20Indian%20man%20fashion?width=500&height=500&seed=4&nologo=true", Ord: 5},
	{ID: "5", Name: "Kids", Image: "https://image.pollinations.ai/prompt/Cute%20kids%20fashion%20photography?width=500&height=500&seed=5&nologo=true", Ord: 4},
	{ID: "6", Name: "Jewellery", Image: "https://image.pollinations.ai/prompt/Gold%20necklace%20Indian%20jewellery?width=500&height=500&seed=6&nologo=true", Ord: 3},
	{ID: "7", Name: "Bags", Image: "https://image.pollinations.ai/prompt/Stylish%20ladies%20handbag?width=500&height=500&seed=7&nologo=true", Ord: 2},
	{ID: "8", Name: "Footwear", Image: "https://image.pollinations.ai/prompt/Men%20running%20shoes?width=500&height=500&seed=8&nologo=true", Ord: 1},
}
