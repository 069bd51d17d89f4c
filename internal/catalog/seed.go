package catalog

type seedEntry struct {
	Name        string
	Description string
	ImagePath   string
}

var seedCheeses = []seedEntry{
	{
		Name:        "American Cheese",
		Description: "American Cheese is popular in the USA, great for sandwiches and burgers due to its creamy texture and good melting properties.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/American-Cheese-650x395.jpg",
	},
	{
		Name:        "Asiago Cheese",
		Description: "Asiago is an Italian cheese made from cow's milk, available either aged or immature, with a stronger flavor when aged.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Asiago-Cheese-650x434.jpg",
	},
	{
		Name:        "Blue Cheese",
		Description: "Blue Cheese, known for its blue spots and veins, offers a spicy taste and is used in various dishes like blue cheese dressing.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Blue-Cheese-650x394.jpg",
	},
	{
		Name:        "Brocconcini",
		Description: "Brocconcini are small mozzarella balls with a soft, spongy texture, often eaten whole or in salads.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Brocconcini.jpg",
	},
	{
		Name:        "Brie Cheese",
		Description: "Brie, a soft and silky cheese, comes in a round wheel with a light crust, often eaten with crackers or bread.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Brie-Cheese-650x363.jpg",
	},
	{
		Name:        "Burrata Cheese",
		Description: "Burrata, a semi-soft white cheese made with buffalo milk, resembles mozzarella but with a soft milky interior, great on salads and pizzas.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Burrata-Cheese-650x423.jpg",
	},
	{
		Name:        "Butterkäse",
		Description: "Butterkase, a semi-soft, mildly salty cheese with a smooth, creamy texture, is versatile for sandwiches and cooking.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Butterka%CC%88se-650x432.jpg",
	},
	{
		Name:        "Cabrales",
		Description: "Cabrales, a Spanish variant of blue cheese, is made exclusively in the Asturias region with specific milk types, offering a unique flavor.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Cabrales.jpg",
	},
	{
		Name:        "Camembert Cheese",
		Description: "Camembert, similar to brie but with a more intense flavor, is not as spreadable, often enjoyed with crackers and jam.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Camembert-Cheese-650x367.jpg",
	},
	{
		Name:        "Cheddar Cheese",
		Description: "Cheddar, America’s top selling cheese, ranges from mild to sharp and creamy, perfect for melting on burgers and in various dishes.",
		ImagePath:   "https://www.liveeatlearn.com/wp-content/uploads/2022/12/Cheddar-Cheese-650x343.jpg",
	},
}

// Seed upserts the built-in catalog. Safe to run on every startup: existing
// entries are updated in place through the natural-key upsert.
func Seed(store *Store) error {
	for _, c := range seedCheeses {
		if err := store.Upsert(c.Name, c.Description, c.ImagePath); err != nil {
			return err
		}
	}
	return nil
}
