package catalog

import "github.com/Hasan-Creations/MobiSwap/pkg/enums"

const placeholderImage = "https://placehold.co/600x400.png"

var seedProducts = []Product{
	{
		ID:          "1",
		Name:        "Pixel Pro 8",
		Price:       899,
		Image:       placeholderImage,
		DataAIHint:  "smartphone google",
		Specs:       []string{"12GB RAM", "256GB Storage", "Tensor G3 Chip", `6.7" OLED Display`, "50MP Main Camera"},
		Description: "The latest flagship phone with AI-powered features and an amazing camera system. Experience the best of Google in a sleek design.",
		Featured:    true,
		Condition:   enums.ProductConditionNew,
	},
	{
		ID:          "2",
		Name:        "Galaxy Ultra S23",
		Price:       1099,
		Image:       placeholderImage,
		DataAIHint:  "samsung phone",
		Specs:       []string{"12GB RAM", "512GB Storage", "Snapdragon 8 Gen 2", `6.8" AMOLED 2X Display`, "200MP Main Camera"},
		Description: "Unleash your creativity with the Galaxy Ultra S23. Pro-grade camera, powerful performance, and a stunning display.",
		Featured:    true,
		Condition:   enums.ProductConditionNew,
	},
	{
		ID:          "3",
		Name:        "iPhone 15 Pro",
		Price:       999,
		Image:       placeholderImage,
		DataAIHint:  "apple iphone",
		Specs:       []string{"8GB RAM", "256GB Storage", "A17 Bionic Chip", `6.1" Super Retina XDR`, "48MP Main Camera"},
		Description: "Experience the power and elegance of the iPhone 15 Pro. Featuring a new Action button, advanced camera system, and durable titanium design.",
		Featured:    true,
		Condition:   enums.ProductConditionNew,
	},
	{
		ID:          "4",
		Name:        "OnePlus 11",
		Price:       699,
		Image:       placeholderImage,
		DataAIHint:  "oneplus mobile",
		Specs:       []string{"16GB RAM", "256GB Storage", "Snapdragon 8 Gen 2", `6.7" Fluid AMOLED`, "50MP Hasselblad Camera"},
		Description: "The OnePlus 11 combines smooth performance with a premium camera experience. Fast charging and a vibrant display make it a joy to use.",
		Condition:   enums.ProductConditionNew,
	},
	{
		ID:          "5",
		Name:        "Pixel 7a",
		Price:       449,
		Image:       placeholderImage,
		DataAIHint:  "google pixel",
		Specs:       []string{"8GB RAM", "128GB Storage", "Tensor G2 Chip", `6.1" OLED Display`, "64MP Main Camera"},
		Description: "Get the best of Google at an affordable price. The Pixel 7a offers a great camera, helpful AI features, and all-day battery life.",
		Featured:    true,
		Condition:   enums.ProductConditionUsedLikeNew,
	},
	{
		ID:          "6",
		Name:        "Galaxy A54",
		Price:       379,
		Image:       placeholderImage,
		DataAIHint:  "samsung galaxy",
		Specs:       []string{"8GB RAM", "128GB Storage", "Exynos 1380", `6.4" Super AMOLED`, "50MP Main Camera"},
		Description: "A great all-around mid-range phone with a beautiful display, capable camera, and long-lasting battery. Perfect for everyday use.",
		Condition:   enums.ProductConditionUsedGood,
	},
	{
		ID:          "7",
		Name:        "iPhone 13 Mini",
		Price:       599,
		Image:       placeholderImage,
		DataAIHint:  "iphone mini",
		Specs:       []string{"4GB RAM", "128GB Storage", "A15 Bionic Chip", `5.4" Super Retina XDR`, "12MP Dual Camera"},
		Description: "Compact power. The iPhone 13 Mini packs incredible performance and an advanced dual-camera system into a pocket-friendly design.",
		Condition:   enums.ProductConditionUsedGood,
	},
	{
		ID:          "8",
		Name:        "Redmi Note 12 Pro",
		Price:       299,
		Image:       placeholderImage,
		DataAIHint:  "xiaomi redmi",
		Specs:       []string{"8GB RAM", "256GB Storage", "Dimensity 1080", `6.67" AMOLED Display`, "50MP Main Camera"},
		Description: "Experience flagship-level features without breaking the bank. The Redmi Note 12 Pro offers a stunning display, powerful camera, and fast charging.",
		Condition:   enums.ProductConditionUsedFair,
	},
}
