package product

import "time"

// SeedCatalog is the starter catalog loaded into an empty store.
func SeedCatalog(now time.Time) []Product {
	seed := []Product{
		{ID: "101", Title: "Pink Kanjivaram Silk Saree", Category: "Sarees", Price: 1299, OriginalPrice: 2999, Discount: 56, Rating: 4.2, Reviews: 145, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20woman%20in%20pink%20silk%20saree%20fashion?width=600&height=900&seed=101&nologo=true"},
		{ID: "102", Title: "Blue Banarasi Silk Saree", Category: "Sarees", Price: 1599, OriginalPrice: 3599, Discount: 55, Rating: 4.5, Reviews: 210, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20woman%20in%20royal%20blue%20saree%20fashion?width=600&height=900&seed=102&nologo=true"},
		{ID: "104", Title: "Green Georgette Party Saree", Category: "Sarees", Price: 899, OriginalPrice: 1999, Discount: 55, Rating: 4.0, Reviews: 120, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20woman%20in%20green%20party%20saree?width=600&height=900&seed=104&nologo=true"},
		{ID: "106", Title: "Yellow Chiffon Saree", Category: "Sarees", Price: 799, OriginalPrice: 1599, Discount: 50, Rating: 4.1, Reviews: 85, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20woman%20in%20yellow%20chiffon%20saree?width=600&height=900&seed=106&nologo=true"},
		{ID: "201", Title: "Cotton Printed Kurti Set", Category: "Kurtis", Price: 699, OriginalPrice: 1499, Discount: 53, Rating: 4.0, Reviews: 89, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20girl%20in%20cotton%20printed%20kurti?width=600&height=900&seed=201&nologo=true"},
		{ID: "202", Title: "Yellow Anarkali Kurta", Category: "Kurtis", Price: 899, OriginalPrice: 1799, Discount: 50, Rating: 4.2, Reviews: 120, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20girl%20in%20yellow%20anarkali%20suit?width=600&height=900&seed=202&nologo=true"},
		{ID: "204", Title: "Green Embroidered Kurti", Category: "Kurtis", Price: 1099, OriginalPrice: 2199, Discount: 50, Rating: 4.5, Reviews: 140, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20girl%20in%20green%20embroidered%20kurti?width=600&height=900&seed=204&nologo=true"},
		{ID: "206", Title: "White Chikankari Kurta", Category: "Kurtis", Price: 1599, OriginalPrice: 3199, Discount: 50, Rating: 4.8, Reviews: 200, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Indian%20girl%20in%20white%20chikankari%20kurta?width=600&height=900&seed=206&nologo=true"},
		{ID: "301", Title: "Floral Maxi Dress", Category: "Western", Price: 999, OriginalPrice: 2499, Discount: 60, Rating: 4.3, Reviews: 112, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Woman%20in%20floral%20maxi%20dress%20fashion?width=600&height=900&seed=301&nologo=true"},
		{ID: "302", Title: "Black Bodycon Dress", Category: "Western", Price: 899, OriginalPrice: 1799, Discount: 50, Rating: 4.5, Reviews: 150, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Woman%20in%20black%20bodycon%20dress?width=600&height=900&seed=302&nologo=true"},
		{ID: "304", Title: "White Summer Top", Category: "Western", Price: 499, OriginalPrice: 999, Discount: 50, Rating: 4.0, Reviews: 80, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Woman%20in%20white%20summer%20top?width=600&height=900&seed=304&nologo=true"},
		{ID: "306", Title: "Striped Jumpsuit", Category: "Western", Price: 1299, OriginalPrice: 2599, Discount: 50, Rating: 4.3, Reviews: 110, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Woman%20wearing%20striped%20jumpsuit?width=600&height=900&seed=306&nologo=true"},
		{ID: "401", Title: "Men's Casual Denim Shirt", Category: "Men", Price: 899, OriginalPrice: 1999, Discount: 55, Rating: 4.5, Reviews: 230, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Man%20wearing%20denim%20shirt%20fashion?width=600&height=900&seed=401&nologo=true"},
		{ID: "402", Title: "Classic White T-Shirt", Category: "Men", Price: 499, OriginalPrice: 999, Discount: 50, Rating: 4.3, Reviews: 150, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Man%20wearing%20white%20t-shirt?width=600&height=900&seed=402&nologo=true"},
		{ID: "404", Title: "Grey Sweatshirt", Category: "Men", Price: 999, OriginalPrice: 1999, Discount: 50, Rating: 4.2, Reviews: 110, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Man%20wearing%20grey%20sweatshirt?width=600&height=900&seed=404&nologo=true"},
		{ID: "406", Title: "Blue Jeans", Category: "Men", Price: 1499, OriginalPrice: 2999, Discount: 50, Rating: 4.5, Reviews: 180, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Man%20wearing%20blue%20jeans?width=600&height=900&seed=406&nologo=true"},
		{ID: "501", Title: "Girls Pink Princess Dress", Category: "Kids", Price: 899, OriginalPrice: 1999, Discount: 55, Rating: 4.7, Reviews: 120, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Cute%20girl%20in%20pink%20princess%20dress?width=600&height=900&seed=501&nologo=true"},
		{ID: "502", Title: "Boys Denim Jacket Set", Category: "Kids", Price: 1199, OriginalPrice: 2499, Discount: 52, Rating: 4.5, Reviews: 85, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Cute%20boy%20wearing%20denim%20jacket?width=600&height=900&seed=502&nologo=true"},
		{ID: "504", Title: "Boys Polo T-Shirt", Category: "Kids", Price: 449, OriginalPrice: 999, Discount: 55, Rating: 4.1, Reviews: 95, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Cute%20boy%20wearing%20polo%20shirt?width=600&height=900&seed=504&nologo=true"},
		{ID: "506", Title: "Girls Denim Skirt", Category: "Kids", Price: 699, OriginalPrice: 1399, Discount: 50, Rating: 4.4, Reviews: 90, StockQuantity: 25, Image: "https://image.pollinations.ai/prompt/Cute%20girl%20in%20denim%20skirt?width=600&height=900&seed=506&nologo=true"},
	}
	for i := range seed {
		seed[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
	}
	return seed
}
