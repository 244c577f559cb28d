package infrastructure

import "advision/internal/domain"

// seedAds is the built-in competitor ad dataset served by the catalog.
// IDs are assigned at ingestion, not here.
var seedAds = []domain.Ad{
	{
		AdCreativeBody: "🔥 FLASH SALE! Get 50% OFF on Nike Air Max. Limited time only. Free shipping on orders over $50. Don't miss out on this amazing deal!",
		AdSnapshotURL:  "https://example.com/ads/nike-sale.jpg",
		Spend:          2500,
		Impressions:    45000,
		Country:        "US",
		BusinessType:   "E-commerce",
		Category:       "Fashion & Apparel",
		Platform:       "Facebook",
		AdType:         "Promotional",
		TargetAudience: "Sports enthusiasts, 18-35",
		CreatedDate:    "2024-08-15",
	},
	{
		AdCreativeBody: "New iPhone 15 Pro Max - Pre-order now and get free AirPods! Experience the future of mobile photography. Available in 4 stunning colors.",
		AdSnapshotURL:  "https://example.com/ads/iphone15.jpg",
		Spend:          15000,
		Impressions:    120000,
		Country:        "US",
		BusinessType:   "Technology",
		Category:       "Electronics",
		Platform:       "Instagram",
		AdType:         "Product Launch",
		TargetAudience: "Tech enthusiasts, 25-45",
		CreatedDate:    "2024-08-20",
	},
	{
		AdCreativeBody: "Transform your home with our premium furniture collection. Modern designs, affordable prices. Shop now and get 20% off your first purchase!",
		AdSnapshotURL:  "https://example.com/ads/furniture.jpg",
		Spend:          3200,
		Impressions:    28000,
		Country:        "US",
		BusinessType:   "Home & Garden",
		Category:       "Furniture",
		Platform:       "Facebook",
		AdType:         "Brand Awareness",
		TargetAudience: "Homeowners, 30-50",
		CreatedDate:    "2024-08-18",
	},
	{
		AdCreativeBody: "🍕 Domino's Pizza - Order online and get 2 large pizzas for the price of 1! Hot, fresh, and delivered to your door in 30 minutes or less.",
		AdSnapshotURL:  "https://example.com/ads/dominos.jpg",
		Spend:          8500,
		Impressions:    95000,
		Country:        "US",
		BusinessType:   "Food & Beverage",
		Category:       "Fast Food",
		Platform:       "Facebook",
		AdType:         "Promotional",
		TargetAudience: "Families, 25-45",
		CreatedDate:    "2024-08-19",
	},
	{
		AdCreativeBody: "Starbucks Rewards - Join our loyalty program and earn points on every purchase. Free birthday drink and exclusive member offers!",
		AdSnapshotURL:  "https://example.com/ads/starbucks.jpg",
		Spend:          6200,
		Impressions:    78000,
		Country:        "US",
		BusinessType:   "Food & Beverage",
		Category:       "Coffee",
		Platform:       "Instagram",
		AdType:         "Loyalty Program",
		TargetAudience: "Coffee drinkers, 18-40",
		CreatedDate:    "2024-08-17",
	},
	{
		AdCreativeBody: "💪 Start your fitness journey today! Join Planet Fitness for just $10/month. No judgment zone, 24/7 access, and free fitness training.",
		AdSnapshotURL:  "https://example.com/ads/planet-fitness.jpg",
		Spend:          4100,
		Impressions:    52000,
		Country:        "US",
		BusinessType:   "Health & Fitness",
		Category:       "Gym",
		Platform:       "Facebook",
		AdType:         "Membership",
		TargetAudience: "Fitness beginners, 20-40",
		CreatedDate:    "2024-08-16",
	},
	{
		AdCreativeBody: "MyFitnessPal - Track your calories, macros, and workouts. Join 200+ million users worldwide. Download now and get 30 days premium free!",
		AdSnapshotURL:  "https://example.com/ads/myfitnesspal.jpg",
		Spend:          5400,
		Impressions:    67000,
		Country:        "US",
		BusinessType:   "Health & Fitness",
		Category:       "Mobile App",
		Platform:       "Instagram",
		AdType:         "App Install",
		TargetAudience: "Health-conscious users, 18-45",
		CreatedDate:    "2024-08-21",
	},
	{
		AdCreativeBody: "🎓 Learn to code with Codecademy! Master Python, JavaScript, and more. Start your tech career today. 50% off annual membership.",
		AdSnapshotURL:  "https://example.com/ads/codecademy.jpg",
		Spend:          3800,
		Impressions:    41000,
		Country:        "US",
		BusinessType:   "Education",
		Category:       "Online Learning",
		Platform:       "Facebook",
		AdType:         "Promotional",
		TargetAudience: "Career changers, 20-35",
		CreatedDate:    "2024-08-14",
	},
	{
		AdCreativeBody: "Coursera - Get certified in Data Science, Business, and more. Learn from top universities. Flexible learning at your own pace.",
		AdSnapshotURL:  "https://example.com/ads/coursera.jpg",
		Spend:          4600,
		Impressions:    49000,
		Country:        "UK",
		BusinessType:   "Education",
		Category:       "Online Learning",
		Platform:       "LinkedIn",
		AdType:         "Brand Awareness",
		TargetAudience: "Professionals, 25-45",
		CreatedDate:    "2024-08-13",
	},
	{
		AdCreativeBody: "✈️ Book your dream vacation with Expedia! Save up to 40% on flights and hotels. Discover amazing destinations worldwide.",
		AdSnapshotURL:  "https://example.com/ads/expedia.jpg",
		Spend:          9800,
		Impressions:    110000,
		Country:        "US",
		BusinessType:   "Travel",
		Category:       "Online Travel",
		Platform:       "Facebook",
		AdType:         "Promotional",
		TargetAudience: "Travelers, 25-55",
		CreatedDate:    "2024-08-12",
	},
	{
		AdCreativeBody: "Airbnb - Experience unique stays around the world. From cozy apartments to luxury villas. Book your next adventure today!",
		AdSnapshotURL:  "https://example.com/ads/airbnb.jpg",
		Spend:          12000,
		Impressions:    135000,
		Country:        "CA",
		BusinessType:   "Travel",
		Category:       "Accommodation",
		Platform:       "Instagram",
		AdType:         "Brand Awareness",
		TargetAudience: "Adventure seekers, 22-45",
		CreatedDate:    "2024-08-11",
	},
	{
		AdCreativeBody: "Robinhood - Start investing with just $1. Commission-free trading on stocks, ETFs, and crypto. Join millions of investors.",
		AdSnapshotURL:  "https://example.com/ads/robinhood.jpg",
		Spend:          7300,
		Impressions:    88000,
		Country:        "US",
		BusinessType:   "Financial Services",
		Category:       "Investment",
		Platform:       "Facebook",
		AdType:         "App Install",
		TargetAudience: "New investors, 21-40",
		CreatedDate:    "2024-08-10",
	},
	{
		AdCreativeBody: "Chase Bank - Get $200 when you open a new checking account. No monthly fees with direct deposit. Apply online in minutes.",
		AdSnapshotURL:  "https://example.com/ads/chase.jpg",
		Spend:          11500,
		Impressions:    102000,
		Country:        "US",
		BusinessType:   "Financial Services",
		Category:       "Banking",
		Platform:       "Facebook",
		AdType:         "Promotional",
		TargetAudience: "Young professionals, 22-40",
		CreatedDate:    "2024-08-09",
	},
	{
		AdCreativeBody: "Netflix - Watch unlimited movies and TV shows. New releases every week. Start your free trial today!",
		AdSnapshotURL:  "https://example.com/ads/netflix.jpg",
		Spend:          14200,
		Impressions:    160000,
		Country:        "US",
		BusinessType:   "Entertainment",
		Category:       "Streaming",
		Platform:       "Instagram",
		AdType:         "Free Trial",
		TargetAudience: "Streamers, 18-50",
		CreatedDate:    "2024-08-08",
	},
	{
		AdCreativeBody: "Spotify Premium - Listen to music without ads. Download songs for offline listening. Try free for 30 days!",
		AdSnapshotURL:  "https://example.com/ads/spotify.jpg",
		Spend:          9100,
		Impressions:    125000,
		Country:        "UK",
		BusinessType:   "Entertainment",
		Category:       "Music Streaming",
		Platform:       "Facebook",
		AdType:         "Free Trial",
		TargetAudience: "Music lovers, 16-40",
		CreatedDate:    "2024-08-07",
	},
	{
		AdCreativeBody: "Tesla Model 3 - Experience the future of driving. Zero emissions, autopilot, and 350-mile range. Order yours today!",
		AdSnapshotURL:  "https://example.com/ads/tesla.jpg",
		Spend:          18000,
		Impressions:    145000,
		Country:        "US",
		BusinessType:   "Automotive",
		Category:       "Electric Vehicles",
		Platform:       "Facebook",
		AdType:         "Product Launch",
		TargetAudience: "EV buyers, 30-55",
		CreatedDate:    "2024-08-06",
	},
}
