package repository

import (
	"time"

	"alugaki/internal/models"
)

// Built-in demo dataset: two roster users, four catalog items and one
// conversation. Used when the config does not provide its own seed.

func seedTime(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

func SeedUsers() []models.User {
	return []models.User{
		{
			ID:        "1",
			Name:      "João Silva",
			Email:     "joao@email.com",
			Avatar:    "https://i.pravatar.cc/150?img=1",
			Phone:     "(11) 99999-9999",
			CreatedAt: seedTime("2023-01-15T00:00:00Z"),
		},
		{
			ID:        "2",
			Name:      "Maria Souza",
			Email:     "maria@email.com",
			Avatar:    "https://i.pravatar.cc/150?img=2",
			Phone:     "(11) 88888-8888",
			CreatedAt: seedTime("2023-02-20T00:00:00Z"),
		},
	}
}

func SeedItems() []models.Item {
	users := SeedUsers()
	joao, maria := users[0], users[1]

	return []models.Item{
		{
			ID:            "1",
			Title:         "Câmera DSLR Canon EOS",
			Description:   "Câmera profissional em ótimo estado, ideal para fotografia de eventos. Acompanha lente 18-55mm e carregador.",
			Category:      models.CategoryElectronics,
			PricePerDay:   50.00,
			MaxRentalDays: 7,
			Images: []string{
				"https://images.unsplash.com/photo-1516035069371-29a1b244cc32?q=80&w=1000",
				"https://images.unsplash.com/photo-1502920917128-1aa500764cbd?q=80&w=1000",
			},
			Location: models.Location{
				Address:   "Rua das Flores, 123",
				City:      "São Paulo",
				State:     "SP",
				Latitude:  -23.550520,
				Longitude: -46.633308,
			},
			Owner:     joao,
			CreatedAt: seedTime("2023-06-10T00:00:00Z"),
			Available: true,
		},
		{
			ID:            "2",
			Title:         "Guitarra Fender Stratocaster",
			Description:   "Guitarra em perfeito estado, ideal para shows ou gravações. Acompanha case rígido e cabo.",
			Category:      models.CategoryMusic,
			PricePerDay:   40.00,
			MaxRentalDays: 14,
			Images: []string{
				"https://images.unsplash.com/photo-1525201548942-d8732f6617f0?q=80&w=1000",
				"https://images.unsplash.com/photo-1550985616-10810253b84d?q=80&w=1000",
			},
			Location: models.Location{
				Address:   "Av. Paulista, 1000",
				City:      "São Paulo",
				State:     "SP",
				Latitude:  -23.561420,
				Longitude: -46.655530,
			},
			Owner:     maria,
			CreatedAt: seedTime("2023-07-05T00:00:00Z"),
			Available: true,
		},
		{
			ID:            "3",
			Title:         "Drone DJI Mini 2",
			Description:   "Drone compacto com câmera 4K, perfeito para filmagens aéreas. Bateria com boa autonomia.",
			Category:      models.CategoryElectronics,
			PricePerDay:   80.00,
			MaxRentalDays: 5,
			Images: []string{
				"https://images.unsplash.com/photo-1579829366248-204fe8413f31?q=80&w=1000",
				"https://images.unsplash.com/photo-1524143986875-3b098d911b9f?q=80&w=1000",
			},
			Location: models.Location{
				Address:   "Rua Augusta, 500",
				City:      "São Paulo",
				State:     "SP",
				Latitude:  -23.553780,
				Longitude: -46.642990,
			},
			Owner:     joao,
			CreatedAt: seedTime("2023-08-15T00:00:00Z"),
			Available: true,
		},
		{
			ID:            "4",
			Title:         "Bicicleta Mountain Bike",
			Description:   "Bicicleta em ótimo estado, ideal para trilhas e passeios. Aro 29, freio a disco.",
			Category:      models.CategorySports,
			PricePerDay:   35.00,
			MaxRentalDays: 10,
			Images: []string{
				"https://images.unsplash.com/photo-1485965120184-e220f721d03e?q=80&w=1000",
				"https://images.unsplash.com/photo-1511994298241-608e28f14fde?q=80&w=1000",
			},
			Location: models.Location{
				Address:   "Av. Brigadeiro Faria Lima, 2000",
				City:      "São Paulo",
				State:     "SP",
				Latitude:  -23.567690,
				Longitude: -46.693190,
			},
			Owner:     maria,
			CreatedAt: seedTime("2023-09-01T00:00:00Z"),
			Available: true,
		},
	}
}

func SeedChats() []*models.Chat {
	users := SeedUsers()
	joao, maria := users[0], users[1]

	return []*models.Chat{
		{
			ID:           "1",
			ItemID:       "1",
			Participants: []models.User{joao, maria},
			Messages: []models.Message{
				{
					ID:        "1",
					ChatID:    "1",
					Sender:    maria,
					Content:   "Olá, a câmera está disponível para o próximo final de semana?",
					CreatedAt: seedTime("2023-10-01T10:30:00Z"),
					Read:      true,
				},
				{
					ID:        "2",
					ChatID:    "1",
					Sender:    joao,
					Content:   "Sim, está disponível! Você pode alugar por até 7 dias.",
					CreatedAt: seedTime("2023-10-01T11:15:00Z"),
					Read:      true,
				},
				{
					ID:        "3",
					ChatID:    "1",
					Sender:    maria,
					Content:   "Perfeito! Posso pegar na sexta-feira e devolver na segunda?",
					CreatedAt: seedTime("2023-10-01T11:20:00Z"),
					Read:      true,
				},
			},
			CreatedAt: seedTime("2023-10-01T10:30:00Z"),
		},
	}
}
