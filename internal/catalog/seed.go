package catalog

import "github.com/shopspring/decimal"

// Seed returns the initial product list used until an admin edits the catalog
// or a remote load replaces it. Product images reference the assets served
// from /public/images.
func Seed() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Blossom Box with Gold Chain",
			Description: "Our signature arrangement featuring hand-poured peony, rose, and heart-shaped candles in soft pinks and creams. Presented in a luxury white box with an elegant gold chain handle.",
			Price:       decimal.RequireFromString("48.00"),
			Category:    "Arrangements",
			Image:       "/images/produkt1.jpeg",
			ScentNotes:  "Peony, Rose Petals, Sweet Pea",
		},
		{
			ID:          "2",
			Name:        "Celestial Blue & Gold Pillar",
			Description: "A masterpiece of wax art. This tall pillar features a mesmerising mottled blue and white texture, hand-gilded with 24k gold leaf accents. Each piece is completely unique.",
			Price:       decimal.RequireFromString("35.00"),
			Category:    "Pillars",
			Image:       "/images/produkt2.jpeg",
			ScentNotes:  "Ocean Mist, Driftwood, Amber",
		},
		{
			ID:          "3",
			Name:        "Carousel Dreams Jar",
			Description: "A whimsical white ceramic vessel adorned with intricate carousel horse reliefs. Filled with our creamy soy wax blend.",
			Price:       decimal.RequireFromString("42.00"),
			Category:    "Jars",
			Image:       "/images/produkt3.jpeg",
			ScentNotes:  "Vanilla Bean, Cashmere, Sandalwood",
		},
		{
			ID:          "4",
			Name:        "Pastel Tulip Bundle",
			Description: "A delicate collection of individual tulip candles in spring pastel shades. Perfect for table settings.",
			Price:       decimal.RequireFromString("22.00"),
			Category:    "Novelty",
			Image:       "https://images.unsplash.com/photo-1526047932273-341f2a7631f9?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Fresh Cut Grass, Lemon Zest",
		},
		{
			ID:          "5",
			Name:        "Textured Love Heart",
			Description: "Intricately textured heart candle in a vibrant berry pink. A perfect small gift for someone special.",
			Price:       decimal.RequireFromString("16.00"),
			Category:    "Novelty",
			Image:       "https://images.unsplash.com/photo-1518049615243-71822c974444?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Raspberry, Champagne, Sugar",
		},
		{
			ID:          "6",
			Name:        "Midnight Gold",
			Description: "A deep blue version of our signature gold-leaf pillar, bringing a moody elegance to your evening.",
			Price:       decimal.RequireFromString("35.00"),
			Category:    "Pillars",
			Image:       "https://images.unsplash.com/photo-1612198188060-c7c2a3b66eae?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Oud, Black Pepper, Bergamot",
		},
		{
			ID:          "7",
			Name:        "Frosted Fir Luminary",
			Description: "Winter white pillar with hand-painted evergreen branches and a dusting of pearl shimmer—perfect for Christmas mantels.",
			Price:       decimal.RequireFromString("38.00"),
			Category:    "Christmas",
			Image:       "https://images.unsplash.com/photo-1470246973918-29a93221c455?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Pine Resin, Clove, Winter Citrus",
		},
		{
			ID:          "8",
			Name:        "Blush Peony Heart",
			Description: "Romantic sculpted heart with layered petals and a satin bow—made for Valentines surprises.",
			Price:       decimal.RequireFromString("24.00"),
			Category:    "Valentines",
			Image:       "https://images.unsplash.com/photo-1501004318641-b39e6451bec6?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Rosewater, Peony, Vanilla Sugar",
		},
		{
			ID:          "9",
			Name:        "Golden Yolk Egg Duo",
			Description: "Playful speckled egg candles nested in straw cups—sweet Easter brunch accents.",
			Price:       decimal.RequireFromString("18.00"),
			Category:    "Easter",
			Image:       "https://images.unsplash.com/photo-1528458965990-428de4b1cb0f?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Lemon Curd, Neroli, Vanilla Pod",
		},
		{
			ID:          "10",
			Name:        "Confetti Drip Celebration Pillar",
			Description: "Tall ivory pillar with hand-poured candy-color drips and gold foil—built to crown a birthday table.",
			Price:       decimal.RequireFromString("32.00"),
			Category:    "Birthday",
			Image:       "https://images.unsplash.com/photo-1526655009434-6c000a543221?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Sparkling Citrus, Buttercream, Tonka",
		},
		{
			ID:          "11",
			Name:        "Mother’s Garden Bouquet",
			Description: "Cluster of sculpted floral tapers wrapped in silk ribbon, a tender nod to Mother’s Day brunches.",
			Price:       decimal.RequireFromString("36.00"),
			Category:    "Mother's Day",
			Image:       "https://images.unsplash.com/photo-1441123100240-f9f3f77ed41b?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Magnolia, White Tea, Honeycomb",
		},
		{
			ID:          "12",
			Name:        "Harvest Amber Lantern",
			Description: "Amber-toned carved lantern with leaf reliefs, ready for autumn gatherings and cozy dinners.",
			Price:       decimal.RequireFromString("34.00"),
			Category:    "Autumn",
			Image:       "https://images.unsplash.com/photo-1473186505569-9c61870c11f9?q=80&w=1000&auto=format&fit=crop",
			ScentNotes:  "Maple Wood, Smoked Vanilla, Spiced Pear",
		},
	}
}
