package market

import "strings"

// Item is one static commodity listing. The market page has no live backend;
// these fixtures stand in for it.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousPrice float64 `json:"previousPrice"`
	Location      string  `json:"location"`
	Date          string  `json:"date"`
	Rating        float64 `json:"rating"`
	Supplier      string  `json:"supplier"`
}

// Post is one static community discussion entry.
type Post struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Title  string `json:"title"`
}

// Categories available for market filtering.
var Categories = []string{"All", "Grains", "Vegetables", "Fruits", "Cash Crops", "Dairy", "Poultry"}

var items = []Item{
	{ID: "1", Name: "Wheat", Category: "Grains", CurrentPrice: 2850, PreviousPrice: 2750, Location: "Delhi Mandi", Date: "2025-12-06", Rating: 4.5, Supplier: "Grain Hub Ltd"},
	{ID: "2", Name: "Rice (Basmati)", Category: "Grains", CurrentPrice: 4200, PreviousPrice: 4100, Location: "Punjab Market", Date: "2025-12-06", Rating: 4.8, Supplier: "Punjab Rice Co"},
	{ID: "3", Name: "Tomato", Category: "Vegetables", CurrentPrice: 45, PreviousPrice: 52, Location: "Mumbai APMC", Date: "2025-12-06", Rating: 4.2, Supplier: "Fresh Produce Inc"},
	{ID: "4", Name: "Onion", Category: "Vegetables", CurrentPrice: 35, PreviousPrice: 42, Location: "Nashik Market", Date: "2025-12-06", Rating: 4.0, Supplier: "Nashik Traders"},
	{ID: "5", Name: "Cotton", Category: "Cash Crops", CurrentPrice: 6800, PreviousPrice: 6650, Location: "Gujarat Cotton Exchange", Date: "2025-12-06", Rating: 4.6, Supplier: "Cotton Connect"},
	{ID: "6", Name: "Sugarcane", Category: "Cash Crops", CurrentPrice: 320, PreviousPrice: 315, Location: "UP Sugar Mills", Date: "2025-12-06", Rating: 4.3, Supplier: "Sugar Valley Corp"},
}

var posts = []Post{
	{ID: "1", Author: "Rajesh Kumar", Title: "Best practices for wheat harvesting this season"},
	{ID: "2", Author: "Dr. Priya Sharma", Title: "Organic pest control methods for cotton crops"},
	{ID: "3", Author: "Amit Patel", Title: "Water conservation techniques that increased my profit by 30%"},
	{ID: "4", Author: "Sunita Devi", Title: "Women in agriculture: My journey from traditional to modern farming"},
	{ID: "5", Author: "Prof. Ravi Krishnan", Title: "Climate-smart agriculture practices for rice cultivation"},
}

// Items returns the listings that match the optional category and search
// filters. An empty or "All" category matches everything.
func Items(category, search string) []Item {
	out := make([]Item, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, item := range items {
		if category != "" && category != "All" && item.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Posts returns the community entries matching the optional search filter.
func Posts(search string) []Post {
	out := make([]Post, 0, len(posts))
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, post := range posts {
		if needle != "" &&
			!strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Author), needle) {
			continue
		}
		out = append(out, post)
	}
	return out
}
