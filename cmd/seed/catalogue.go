package main

import "diljourney/internal/domain/venues"

// catalogue is the sample venue set loaded by the seed command.
func catalogue() []venues.Venue {
	return []venues.Venue{
		{
			Name:          "The Rooftop Garden Cafe",
			Description:   "A candlelit rooftop cafe with a stunning city view, perfect for intimate evenings.",
			Moods:         []string{"romantic", "lonely"},
			MoodScores:    map[string]float64{"romantic": 0.95, "lonely": 0.70, "family": 0.2, "foodie": 0.6, "nature": 0.5, "club": 0.1},
			Category:      "cafe",
			Address:       "12 Sky Lane, Connaught Place",
			City:          "Delhi",
			Ambiance:      venues.Ambiance{Lighting: "dim", NoiseLevel: "quiet", Seating: "private", OutdoorArea: true, Decor: "elegant"},
			ActivityGuide: "Order the sharing platter, linger over dessert, take a slow walk along the rooftop after.",
			SeekingGuide:  "Seek deep conversation, the glow of city lights, and the feeling of the world slowing down.",
			PriceRange:    "$$$",
			Cuisine:       "Continental",
			OpeningHours:  "6 PM - 12 AM",
		},
		{
			Name:          "Café Mirage",
			Description:   "A hidden gem with fairy lights, soft jazz, and an intimate wine menu.",
			Moods:         []string{"romantic", "lonely"},
			MoodScores:    map[string]float64{"romantic": 0.92, "lonely": 0.80, "family": 0.1, "foodie": 0.65, "nature": 0.2, "club": 0.15},
			Category:      "cafe",
			Address:       "8 Bandra Reclamation",
			City:          "Mumbai",
			Ambiance:      venues.Ambiance{Lighting: "dim", NoiseLevel: "quiet", Seating: "private", Decor: "rustic"},
			ActivityGuide: "Put your phones away. Order one thing at a time. Let the conversation lead.",
			SeekingGuide:  "Seek warmth, unhurried moments, and the music that fills the silence between words.",
			PriceRange:    "$$$",
			Cuisine:       "French",
			OpeningHours:  "7 PM - 11:30 PM",
		},
		{
			Name:          "Spice Trail Kitchen",
			Description:   "An award-winning restaurant exploring regional Indian cuisines you've never tried.",
			Moods:         []string{"foodie", "family"},
			MoodScores:    map[string]float64{"foodie": 0.97, "family": 0.75, "romantic": 0.4, "lonely": 0.3, "nature": 0.2, "club": 0.1},
			Category:      "restaurant",
			Address:       "23 Commercial Street",
			City:          "Bangalore",
			Ambiance:      venues.Ambiance{Lighting: "bright", NoiseLevel: "moderate", Seating: "communal", Decor: "vibrant"},
			ActivityGuide: "Ask the waiter about the dish of the day. Try one thing you've never ordered before.",
			SeekingGuide:  "Seek authentic regional flavors, the story behind each ingredient, and a menu that surprises you.",
			PriceRange:    "$$",
			Cuisine:       "Indian Regional",
			OpeningHours:  "12 PM - 10:30 PM",
		},
		{
			Name:          "The Market Table",
			Description:   "Farm-to-table dining where the menu changes daily based on fresh market produce.",
			Moods:         []string{"foodie"},
			MoodScores:    map[string]float64{"foodie": 0.98, "family": 0.6, "romantic": 0.5, "lonely": 0.4, "nature": 0.6, "club": 0.05},
			Category:      "restaurant",
			Address:       "5 Old Market Road",
			City:          "Jaipur",
			Ambiance:      venues.Ambiance{Lighting: "natural", NoiseLevel: "moderate", Seating: "communal", OutdoorArea: true, Decor: "rustic"},
			ActivityGuide: "Ask about today's special. Watch the open kitchen. Let the chef recommend the pairing.",
			SeekingGuide:  "Seek freshness, seasonality and honest cooking: food that tastes like someone cared.",
			PriceRange:    "$$",
			Cuisine:       "Contemporary Indian",
			OpeningHours:  "11 AM - 9 PM",
		},
		{
			Name:          "Wonder World Play Cafe",
			Description:   "A large family cafe with a play zone, group dining, and activities for all ages.",
			Moods:         []string{"family"},
			MoodScores:    map[string]float64{"family": 0.98, "foodie": 0.5, "romantic": 0.1, "lonely": 0.05, "nature": 0.3, "club": 0.1},
			Category:      "cafe",
			Address:       "45 Powai Lake Road",
			City:          "Mumbai",
			Ambiance:      venues.Ambiance{Lighting: "bright", NoiseLevel: "loud", Seating: "communal", OutdoorArea: true, Decor: "vibrant"},
			ActivityGuide: "Let the kids pick the first activity. Play a board game together. Order the sharing platters.",
			SeekingGuide:  "Seek shared laughter, the chaos of togetherness, and a moment that becomes a family story.",
			PriceRange:    "$$",
			Cuisine:       "Multi-cuisine",
			OpeningHours:  "10 AM - 9 PM",
		},
		{
			Name:          "The Lakeview Pavilion",
			Description:   "An open-air cafe set beside a serene lake with walking trails and bird-watching spots.",
			Moods:         []string{"nature", "lonely", "romantic"},
			MoodScores:    map[string]float64{"nature": 0.96, "lonely": 0.82, "romantic": 0.75, "family": 0.55, "foodie": 0.4, "club": 0.05},
			Category:      "cafe",
			Address:       "Sukhna Lake Road",
			City:          "Chandigarh",
			Ambiance:      venues.Ambiance{Lighting: "natural", NoiseLevel: "quiet", Seating: "mixed", OutdoorArea: true, Decor: "minimalist"},
			ActivityGuide: "Walk the trail first. Then sit with a warm drink and do nothing for at least 20 minutes.",
			SeekingGuide:  "Seek stillness, the sound of water, birdsong, and the feeling of your mind gently clearing.",
			PriceRange:    "$",
			Cuisine:       "Cafe & Snacks",
			OpeningHours:  "7 AM - 8 PM",
		},
		{
			Name:          "Himalayan Brew",
			Description:   "A mountain-view cafe surrounded by pine trees with outdoor seating and fresh mountain air.",
			Moods:         []string{"nature", "lonely"},
			MoodScores:    map[string]float64{"nature": 0.99, "lonely": 0.85, "romantic": 0.65, "family": 0.5, "foodie": 0.45, "club": 0.02},
			Category:      "cafe",
			Address:       "Mall Road",
			City:          "Manali",
			Ambiance:      venues.Ambiance{Lighting: "natural", NoiseLevel: "quiet", Seating: "mixed", OutdoorArea: true, Decor: "rustic"},
			ActivityGuide: "Leave your phone inside. Sit outside. Breathe deeply. Watch the mountains do nothing.",
			SeekingGuide:  "Seek restoration, perspective, clean air, and the grounding feeling of being small in a big world.",
			PriceRange:    "$",
			Cuisine:       "Cafe",
			OpeningHours:  "8 AM - 7 PM",
		},
		{
			Name:          "The Corner Nook",
			Description:   "A cozy independent bookstore-cafe with warm lighting, quiet corners, and the best filter coffee in town.",
			Moods:         []string{"lonely", "nature"},
			MoodScores:    map[string]float64{"lonely": 0.97, "nature": 0.4, "romantic": 0.55, "family": 0.3, "foodie": 0.5, "club": 0.05},
			Category:      "cafe",
			Address:       "7 Church Street",
			City:          "Bangalore",
			Ambiance:      venues.Ambiance{Lighting: "warm", NoiseLevel: "quiet", Seating: "private", Decor: "rustic"},
			ActivityGuide: "Pick a book off the shelf. Journal. Order a slow coffee. Let yourself settle without rushing.",
			SeekingGuide:  "Seek warmth, quiet companionship of strangers, and the comfort of a place that doesn't demand anything from you.",
			PriceRange:    "$",
			Cuisine:       "Cafe",
			OpeningHours:  "8 AM - 10 PM",
		},
		{
			Name:          "Pulse Nightclub",
			Description:   "Delhi's top nightclub with world-class DJs, a premium bar, and an electric dance floor.",
			Moods:         []string{"club"},
			MoodScores:    map[string]float64{"club": 0.99, "lonely": 0.1, "romantic": 0.4, "family": 0.0, "foodie": 0.2, "nature": 0.0},
			Category:      "club",
			Address:       "DLF Cyberhub",
			City:          "Delhi",
			Ambiance:      venues.Ambiance{Lighting: "dim", NoiseLevel: "vibrant", Seating: "mixed", Decor: "modern"},
			ActivityGuide: "Dance first, drinks second. Talk to someone new. Let the music choose your mood.",
			SeekingGuide:  "Seek high energy, freedom, spontaneous connection, and the feeling of being completely in the moment.",
			PriceRange:    "$$$",
			Cuisine:       "Bar & Cocktails",
			OpeningHours:  "9 PM - 4 AM",
		},
	}
}
