package database

import (
	"fmt"
	"log"

	"booknook/internal/storage"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

var defaultCatalog = []storage.NewBook{
	{
		Title:       "The Midnight Library",
		Author:      "Matt Haig",
		CoverImage:  "https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  304,
		Description: strptr("Between life and death there is a library, and within that library, the shelves go on forever. Every book provides a chance to try another life you could have lived."),
		Rating:      intptr(4),
	},
	{
		Title:       "Circe",
		Author:      "Madeline Miller",
		CoverImage:  "https://images.unsplash.com/photo-1541963463532-d68292c34b19?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  352,
		Description: strptr("In the house of Helios, god of the sun and mightiest of the Titans, a daughter is born. But Circe is a strange child, neither powerful like her father nor alluring like her mother."),
		Rating:      intptr(5),
	},
	{
		Title:       "Dune",
		Author:      "Frank Herbert",
		CoverImage:  "https://images.unsplash.com/photo-1589829085413-56de8ae18c73?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  412,
		Description: strptr("Set on the desert planet Arrakis, Dune is the story of the boy Paul Atreides, heir to a noble family tasked with ruling an inhospitable world where the only thing of value is the spice melange."),
		Rating:      intptr(5),
	},
	{
		Title:       "The Song of Achilles",
		Author:      "Madeline Miller",
		CoverImage:  "https://images.unsplash.com/photo-1629992101753-56d196c8aabb?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  352,
		Description: strptr("Greece in the age of heroes. Patroclus, an awkward young prince, has been exiled to the court of King Peleus and his perfect son Achilles."),
		Rating:      intptr(4),
	},
	{
		Title:       "The Alchemist",
		Author:      "Paulo Coelho",
		CoverImage:  "https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  197,
		Description: strptr("Paulo Coelho's masterpiece tells the mystical story of Santiago, an Andalusian shepherd boy who yearns to travel in search of a worldly treasure."),
		Rating:      intptr(4),
	},
	{
		Title:       "Project Hail Mary",
		Author:      "Andy Weir",
		CoverImage:  "https://images.unsplash.com/photo-1589829085413-56de8ae18c73?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  496,
		Description: strptr("Ryland Grace is the sole survivor on a desperate, last-chance mission, and if he fails, humanity and the Earth itself will perish."),
		Rating:      intptr(5),
	},
	{
		Title:       "The House in the Cerulean Sea",
		Author:      "TJ Klune",
		CoverImage:  "https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  396,
		Description: strptr("Linus Baker leads a quiet, solitary life. At forty, he lives in a tiny house with a devious cat and his old records."),
		Rating:      intptr(5),
	},
	{
		Title:       "Klara and the Sun",
		Author:      "Kazuo Ishiguro",
		CoverImage:  "https://images.unsplash.com/photo-1541963463532-d68292c34b19?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  320,
		Description: strptr("From the bestselling author of Never Let Me Go and The Remains of the Day, a stunning novel that asks, what does it mean to love?"),
		Rating:      intptr(4),
	},
	{
		Title:       "The Invisible Life of Addie LaRue",
		Author:      "V.E. Schwab",
		CoverImage:  "https://images.unsplash.com/photo-1633477189729-9290b3261d0a?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  448,
		Description: strptr("France, 1714: in a moment of desperation, a young woman makes a Faustian bargain to live forever, and is cursed to be forgotten by everyone she meets."),
		Rating:      intptr(4),
	},
	{
		Title:       "The Night Circus",
		Author:      "Erin Morgenstern",
		CoverImage:  "https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=800&h=1200",
		TotalPages:  384,
		Description: strptr("The circus arrives without warning. No announcements precede it. It is simply there, when yesterday it was not."),
		Rating:      intptr(5),
	},
}

// SeedCatalog populates the demo catalog when the store is empty. Works
// against any Catalog implementation, so both backends share it.
func SeedCatalog(store storage.Catalog) error {
	existing, err := store.GetBooks()
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, book := range defaultCatalog {
		if _, err := store.CreateBook(book); err != nil {
			return fmt.Errorf("failed to seed book %q: %w", book.Title, err)
		}
	}
	log.Printf("Seeded catalog with %d books", len(defaultCatalog))
	return nil
}
