package catalog

// trackedShows is the curated default list, tiered from global hits down to
// legacy favorites. Used when neither input file is present.
var trackedShows = []string{
	// Tier 1: global hits and cultural phenomena
	"Stranger Things", "Squid Game", "The Crown", "Bridgerton", "The Witcher",
	"Money Heist", "Dark", "Ozark", "Black Mirror", "The Queen's Gambit",
	"House of Cards", "Mindhunter", "Narcos", "Peaky Blinders", "Better Call Saul",
	"Breaking Bad", "Friends", "The Office", "Seinfeld", "Community",
	"Gilmore Girls", "Grey's Anatomy", "Supernatural", "NCIS", "Shameless",
	"Attack on Titan", "Demon Slayer: Kimetsu no Yaiba", "One Piece", "Death Note",
	"Hunter X Hunter (2011)", "Avatar: The Last Airbender", "Arcane", "Rick and Morty",
	"BoJack Horseman", "Big Mouth", "Sex Education", "Emily in Paris", "Lupin",
	"Shadow and Bone", "Sweet Tooth", "Cobra Kai", "Lucifer", "Manifest",
	"You", "Ginny & Georgia", "Firefly Lane", "Outer Banks", "Virgin River",
	"The Umbrella Academy", "Locke & Key",

	// Tier 2: critically acclaimed and popular (2015-2021)
	"Maid", "Midnight Mass", "Clickbait", "Sex/Life", "Sweet Magnolias",
	"Never Have I Ever", "The Chair", "Halston", "The Serpent", "Behind Her Eyes",
	"Fate: The Winx Saga", "Bling Empire", "Tiny Pretty Things",
	"Dash & Lily", "The Haunting of Bly Manor", "Ratched", "Away", "Cursed",
	"Warrior Nun", "Space Force", "Dead to Me", "Hollywood", "Into the Night",
	"Unorthodox", "Tiger King", "Love Is Blind", "Ragnarok", "I Am Not Okay with This",
	"The Stranger", "Dracula", "Messiah", "V Wars",
	"The Politician", "Unbelievable", "The Spy", "Criminal: UK", "The I-Land",
	"Wu Assassins", "Another Life", "Chambers", "Black Summer", "The Society",
	"Bonding", "Special", "Quicksand", "Osmosis", "Turn Up Charlie",
	"After Life", "Russian Doll", "Kingdom", "Tidying Up with Marie Kondo",
	"Perfume", "Dogs of Berlin", "The Kominsky Method", "Bodyguard", "Maniac",

	// Tier 3: international and genre hits
	"Alice in Borderland", "Sweet Home", "The Uncanny Counter", "Vincenzo",
	"Hometown Cha-Cha-Cha", "Itaewon Class", "Crash Landing on You",
	"Elite", "Cable Girls", "High Seas", "The House of Flowers", "Control Z",
	"Dark Desire", "Who Killed Sara?", "3%", "The Rain",
	"Barbarians", "How to Sell Drugs Online (Fast)", "Biohackers",
	"The Valhalla Murders", "Caliphate", "Fauda", "Shtisel", "Sacred Games",
	"Delhi Crime", "Mirzapur", "Bard of Blood", "Betaal", "Jamtara",

	// Tier 4: high volume / long running
	"The Great British Baking Show", "Paul Hollywood's Big Continental Road Trip",
	"Comedians in Cars Getting Coffee", "My Next Guest Needs No Introduction",
	"Patriot Act with Hasan Minhaj", "The Chef Show", "Nailed It!", "Sugar Rush",
	"Queer Eye", "Selling Sunset", "Too Hot to Handle", "The Circle",
	"Floor Is Lava", "Rhythm + Flow", "Dream Home Makeover", "Get Organized",
	"Tiny House Nation", "Million Dollar Beach House", "Interior Design Masters",
	"Amazing Interiors", "Instant Hotel", "Stay Here", "Restaurants on the Edge",
	"Ugly Delicious", "Salt Fat Acid Heat", "Chef's Table", "Street Food",
	"Taco Chronicles", "Flavorful Origins", "The Final Table", "Million Pound Menu",

	// Tier 5: legacy and licensed favorites
	"Downton Abbey", "Outlander", "The Good Place", "Schitt's Creek",
	"Kim's Convenience", "Workin' Moms", "Call the Midwife", "Sherlock",
	"Merlin", "The IT Crowd", "Broadchurch", "Happy Valley", "Luther",
	"Collateral", "Giri / Haji", "Marcella", "The Fall",
	"Top Boy", "Skins", "The Inbetweeners", "Derry Girls", "Crashing",
	"The End of the F***ing World", "Atypical", "Everything Sucks!",
	"Daybreak", "Insatiable", "The Order",
}
