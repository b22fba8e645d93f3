package catalog

import "dulces-storefront/internal/domain"

var defaultProducts = []domain.Product{
	{
		ID:          "1",
		Name:        "Pack Halloween Deluxe",
		Description: "Caja temática con 6 alfajores decorados, 4 bombones y sorpresas espeluznantes.",
		Price:       15000,
		Category:    domain.CategoryPacks,
		Image:       "https://images.unsplash.com/photo-1632689531668-243e3873499c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		IsNew:       true,
	},
	{
		ID:          "2",
		Name:        "Alfajores de Maicena",
		Description: "Clásicos alfajores de maicena rellenos con abundante dulce de leche y coco.",
		Price:       8000,
		Category:    domain.CategoryAlfajores,
		Image:       "https://images.unsplash.com/photo-1565057338586-42939366118c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "3",
		Name:        "Bombones Surtidos",
		Description: "Selección de 12 bombones de chocolate belga con rellenos frutales.",
		Price:       12000,
		Category:    domain.CategoryChocolates,
		Image:       "https://images.unsplash.com/photo-1549007994-cb92caebd54b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
	},
	{
		ID:          "4",
		Name:        "Caja Regalo Premium",
		Description: "La combinación perfecta: 4 alfajores, 6 bombones y una tableta artesanal.",
		Price:       20000,
		Category:    domain.CategoryPacks,
		Image:       "https://images.unsplash.com/photo-1549007953-2f2dc0b24019?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
	},
}
