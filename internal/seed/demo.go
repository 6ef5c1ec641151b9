package seed

import "wanderlust/internal/domain"

var demoAuthors = []domain.Author{
	{
		ID:       "adventurer",
		Username: "adventurer",
		Name:     "Alex Johnson",
		Avatar:   "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=250&h=250&auto=format&fit=crop",
	},
	{
		ID:       "roadwarrior",
		Username: "roadwarrior",
		Name:     "Sam Rodriguez",
		Avatar:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=250&h=250&auto=format&fit=crop",
	},
	{
		ID:       "nomadlife",
		Username: "nomadlife",
		Name:     "Taylor Kim",
		Avatar:   "https://images.unsplash.com/photo-1539571696357-5a69c17a67c6?w=250&h=250&auto=format&fit=crop",
	},
}

var demoTrips = []domain.Trip{
	{
		ID:          "us1",
		Title:       "Pacific Coast Highway Adventure",
		Description: "Experience the breathtaking views of California's coast on this iconic road trip from San Francisco to Los Angeles.",
		Image:       "https://images.unsplash.com/photo-1482938289607-e9573fc25ebb?w=600&auto=format&fit=crop",
		Distance:    655,
		Duration:    5,
		Location:    "California, USA",
		Difficulty:  domain.DifficultyModerate,
		AuthorID:    "adventurer",
		CreatedAt:   day("2023-04-10T08:15:00Z"),
		Stops: []domain.Stop{
			{ID: "us1-s1", Name: "Golden Gate Bridge", Location: "San Francisco, CA", Description: "Start your journey with views of this iconic San Francisco landmark.", Lat: coord(37.8199), Lng: coord(-122.4783)},
			{ID: "us1-s2", Name: "Monterey Bay", Location: "Monterey, CA", Description: "Explore the famous Monterey Bay Aquarium and Cannery Row.", Lat: coord(36.6002), Lng: coord(-121.8947)},
			{ID: "us1-s3", Name: "Big Sur", Location: "Big Sur, CA", Description: "Drive through one of the most scenic stretches of coastline in the world.", Lat: coord(36.2704), Lng: coord(-121.8081)},
			{ID: "us1-s4", Name: "Santa Barbara", Location: "Santa Barbara, CA", Description: "Enjoy this beautiful coastal city with Spanish architecture.", Lat: coord(34.4208), Lng: coord(-119.6982)},
		},
	},
	{
		ID:          "us2",
		Title:       "Grand Canyon Road Adventure",
		Description: "Explore the natural wonders of the American Southwest, from the Grand Canyon to Monument Valley.",
		Image:       "https://images.unsplash.com/photo-1474044159687-1ee9f3a51722?w=600&auto=format&fit=crop",
		Distance:    850,
		Duration:    7,
		Location:    "Arizona & Utah, USA",
		Difficulty:  domain.DifficultyModerate,
		AuthorID:    "roadwarrior",
		CreatedAt:   day("2023-06-18T16:45:00Z"),
		Stops: []domain.Stop{
			{ID: "us2-s1", Name: "Grand Canyon South Rim", Location: "Grand Canyon National Park, AZ", Description: "Start with breathtaking views of one of the world's natural wonders.", Lat: coord(36.0544), Lng: coord(-112.1401)},
			{ID: "us2-s2", Name: "Horseshoe Bend", Location: "Page, AZ", Description: "Marvel at this iconic meander of the Colorado River.", Lat: coord(36.8791), Lng: coord(-111.5104)},
			{ID: "us2-s3", Name: "Antelope Canyon", Location: "Page, AZ", Description: "Explore the slot canyons with their wave-like walls.", Lat: coord(36.8619), Lng: coord(-111.3743)},
			{ID: "us2-s4", Name: "Monument Valley", Location: "Monument Valley, UT", Description: "Drive through the landscape featured in countless Western films.", Lat: coord(36.9980), Lng: coord(-110.0985)},
		},
	},
	{
		ID:          "us3",
		Title:       "Blue Ridge Parkway Fall Foliage Tour",
		Description: "Experience the autumn colors along one of America's most scenic drives through the Appalachian Mountains.",
		Image:       "https://images.unsplash.com/photo-1476820865390-c52aeebb9891?w=600&auto=format&fit=crop",
		Distance:    469,
		Duration:    4,
		Location:    "Virginia & North Carolina, USA",
		Difficulty:  domain.DifficultyEasy,
		AuthorID:    "nomadlife",
		CreatedAt:   day("2023-09-05T10:30:00Z"),
		Stops: []domain.Stop{
			{ID: "us3-s1", Name: "Shenandoah National Park", Location: "Virginia", Description: "Begin your journey in this park with abundant wildlife.", Lat: coord(38.2928), Lng: coord(-78.6796)},
			{ID: "us3-s2", Name: "Mabry Mill", Location: "Virginia", Description: "Visit one of the most photographed spots on the parkway.", Lat: coord(36.7495), Lng: coord(-80.4045)},
			{ID: "us3-s3", Name: "Linn Cove Viaduct", Location: "North Carolina", Description: "Drive the viaduct that hugs the face of Grandfather Mountain.", Lat: coord(36.0893), Lng: coord(-81.8118)},
			{ID: "us3-s4", Name: "Great Smoky Mountains", Location: "North Carolina", Description: "End your journey in America's most visited national park."},
		},
	},
	{
		ID:          "us4",
		Title:       "Route 66: The Historic Mother Road",
		Description: "Travel the iconic Route 66 from Chicago to Santa Monica, experiencing America's classic road trip.",
		Image:       "https://images.unsplash.com/photo-1566041510639-8d95a2490bfb?w=600&auto=format&fit=crop",
		Distance:    3940,
		Duration:    14,
		Location:    "USA (Multiple States)",
		Difficulty:  domain.DifficultyHard,
		AuthorID:    "nomadlife",
		CreatedAt:   day("2023-04-30T09:20:00Z"),
		Stops: []domain.Stop{
			{ID: "us4-s1", Name: "Chicago", Location: "Chicago, Illinois", Description: "Begin at the starting point of Route 66.", Lat: coord(41.8781), Lng: coord(-87.6298)},
			{ID: "us4-s2", Name: "St. Louis", Location: "St. Louis, Missouri", Description: "Visit the Gateway Arch and try some St. Louis-style BBQ.", Lat: coord(38.6270), Lng: coord(-90.1994)},
			{ID: "us4-s3", Name: "Cadillac Ranch", Location: "Amarillo, Texas", Description: "Check out the public art installation of buried Cadillacs.", Lat: coord(35.1872), Lng: coord(-101.9871)},
			{ID: "us4-s4", Name: "Santa Monica Pier", Location: "Santa Monica, California", Description: "End your journey at this pier on the Pacific Ocean.", Lat: coord(34.0094), Lng: coord(-118.4973)},
		},
	},
	{
		ID:          "eu1",
		Title:       "Iceland's Ring Road",
		Description: "Circle the entire island of Iceland on this epic road trip featuring waterfalls, volcanoes and glaciers.",
		Image:       "https://images.unsplash.com/photo-1504284402001-53fd62ef7177?w=600&auto=format&fit=crop",
		Distance:    1332,
		Duration:    10,
		Location:    "Iceland",
		Difficulty:  domain.DifficultyHard,
		AuthorID:    "adventurer",
		CreatedAt:   day("2023-05-25T13:45:00Z"),
		Stops: []domain.Stop{
			{ID: "eu1-s1", Name: "Reykjavik", Location: "Reykjavik, Iceland", Description: "Start in Iceland's charming capital city.", Lat: coord(64.1466), Lng: coord(-21.9426)},
			{ID: "eu1-s2", Name: "Seljalandsfoss & Skógafoss", Location: "South Region, Iceland", Description: "Visit the iconic waterfalls on the south coast.", Lat: coord(63.6156), Lng: coord(-19.9886)},
			{ID: "eu1-s3", Name: "Jökulsárlón Glacier Lagoon", Location: "Eastern Region, Iceland", Description: "Watch the floating icebergs in this lagoon.", Lat: coord(64.0784), Lng: coord(-16.2306)},
			{ID: "eu1-s4", Name: "Myvatn Geothermal Area", Location: "Northern Region, Iceland", Description: "Experience the geothermal landscapes of northern Iceland.", Lat: coord(65.6039), Lng: coord(-16.9961)},
		},
	},
	{
		ID:          "eu2",
		Title:       "Cruising the French Riviera",
		Description: "A sun-drenched coast, turquoise waters and endless charm from Nice to St Tropez.",
		Image:       "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=600&q=80",
		Distance:    120,
		Duration:    3,
		Location:    "French Riviera, France",
		Difficulty:  domain.DifficultyEasy,
		AuthorID:    "roadwarrior",
		CreatedAt:   day("2023-10-02T09:00:00Z"),
		Stops: []domain.Stop{
			{ID: "eu2-s1", Name: "Nice", Location: "Nice, France", Description: "Stroll the Promenade des Anglais.", Lat: coord(43.7102), Lng: coord(7.2620)},
			{ID: "eu2-s2", Name: "Antibes", Location: "Antibes, France", Description: "Old town ramparts and the Picasso museum.", Lat: coord(43.5808), Lng: coord(7.1251)},
			{ID: "eu2-s3", Name: "Cannes", Location: "Cannes, France", Description: "The Croisette and the old port.", Lat: coord(43.5528), Lng: coord(7.0174)},
			{ID: "eu2-s4", Name: "St Tropez", Location: "Saint-Tropez, France", Description: "Golden-hour views over the Mediterranean.", Lat: coord(43.2727), Lng: coord(6.6406)},
		},
	},
	{
		ID:          "eu3",
		Title:       "Bavarian Castles & Alpine Peaks",
		Description: "From fairy-tale castles to the high Alps across southern Germany.",
		Image:       "https://images.unsplash.com/photo-1500673922987-e212871fec22?w=600&q=80",
		Distance:    310,
		Duration:    4,
		Location:    "Bavaria, Germany",
		Difficulty:  domain.DifficultyModerate,
		AuthorID:    "adventurer",
		CreatedAt:   day("2023-08-14T07:30:00Z"),
		Stops: []domain.Stop{
			{ID: "eu3-s1", Name: "Munich", Location: "Munich, Germany", Description: "Start in the Bavarian capital.", Lat: coord(48.1351), Lng: coord(11.5820)},
			{ID: "eu3-s2", Name: "Neuschwanstein Castle", Location: "Schwangau, Germany", Description: "The fairy-tale castle above the Pöllat gorge.", Lat: coord(47.5576), Lng: coord(10.7498)},
			{ID: "eu3-s3", Name: "Garmisch-Partenkirchen", Location: "Garmisch-Partenkirchen, Germany", Description: "Alpine town at the foot of the Zugspitze.", Lat: coord(47.4921), Lng: coord(11.0958)},
		},
	},
	{
		ID:          "au1",
		Title:       "Great Ocean Road Coastal Journey",
		Description: "Drive along Australia's southern coast to see the Twelve Apostles and other natural wonders.",
		Image:       "https://images.unsplash.com/photo-1614518619097-f0f46c5b9e46?w=600&auto=format&fit=crop",
		Distance:    243,
		Duration:    3,
		Location:    "Victoria, Australia",
		Difficulty:  domain.DifficultyEasy,
		AuthorID:    "roadwarrior",
		CreatedAt:   day("2023-09-17T11:30:00Z"),
		Stops: []domain.Stop{
			{ID: "au1-s1", Name: "Torquay", Location: "Torquay, Victoria", Description: "Begin at the surf town and visit Bells Beach.", Lat: coord(-38.3305), Lng: coord(144.3262)},
			{ID: "au1-s2", Name: "Apollo Bay", Location: "Apollo Bay, Victoria", Description: "A charming coastal town with beautiful beaches.", Lat: coord(-38.7570), Lng: coord(143.6696)},
			{ID: "au1-s3", Name: "Twelve Apostles", Location: "Port Campbell National Park, Victoria", Description: "Limestone stacks rising from the Southern Ocean.", Lat: coord(-38.6621), Lng: coord(143.1051)},
			{ID: "au1-s4", Name: "Bay of Islands", Location: "Warrnambool, Victoria", Description: "Spectacular rock formations and pristine beaches.", Lat: coord(-38.5747), Lng: coord(142.8350)},
		},
	},
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	return NewCatalog(demoTrips, demoAuthors)
}
