// internal/seed/seed.go
package seed

import (
	"log"
	"time"

	"github.com/meusuper/crm-backend/internal/store"
	"github.com/meusuper/crm-backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedData fills the in-memory store with a working demo workspace. The
// store starts empty on every boot, so without this the dashboard has
// nothing to show.
func SeedData(st *store.Store) {
	if len(st.ListUsers()) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] Creating demo workspace...")

	// ============================================
	// TEAM MEMBERS
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	ana := &store.User{
		Email:    "ana.souza@meusuper.app",
		Password: string(password),
		Name:     "Ana Souza",
		Role:     "admin",
	}
	st.CreateUser(ana)

	carlos := &store.User{
		Email:    "carlos.lima@meusuper.app",
		Password: string(password),
		Name:     "Carlos Lima",
		Role:     "member",
	}
	st.CreateUser(carlos)

	julia := &store.User{
		Email:    "julia.ferreira@meusuper.app",
		Password: string(password),
		Name:     "Julia Ferreira",
		Role:     "member",
	}
	st.CreateUser(julia)

	log.Printf("[Seed] Created %d users (login with password123)", 3)

	// ============================================
	// DEFAULT PIPELINE
	// ============================================
	pipeline := &store.Pipeline{
		Name:        "Sales Pipeline",
		Description: "Default sales funnel",
		IsDefault:   true,
		Stages: []store.Stage{
			{Name: "Lead", Color: "#94a3b8", Probability: 10},
			{Name: "Qualified", Color: "#60a5fa", Probability: 25},
			{Name: "Proposal", Color: "#fbbf24", Probability: 50},
			{Name: "Negotiation", Color: "#f97316", Probability: 75},
			{Name: "Won", Color: "#22c55e", Probability: 100, IsClosedWon: true},
			{Name: "Lost", Color: "#ef4444", Probability: 0, IsClosedLost: true},
		},
	}
	st.CreatePipeline(pipeline)

	stageID := func(name string) string {
		for _, s := range pipeline.Stages {
			if s.Name == name {
				return s.ID
			}
		}
		return ""
	}

	// ============================================
	// CONTACTS
	// ============================================
	maria := &store.Contact{
		Name:    "Maria Oliveira",
		Email:   "maria@padariaoliveira.com.br",
		Phone:   stringPtr("+55 11 98765-4321"),
		Company: stringPtr("Padaria Oliveira"),
		Source:  types.SourceWhatsApp,
		Status:  types.ContactProspect,
		Score:   72,
		Notes:   "Asked for the annual plan pricing twice",
	}
	st.CreateContact(maria)

	pedro := &store.Contact{
		Name:     "Pedro Santos",
		Email:    "pedro.santos@techvale.io",
		Company:  stringPtr("TechVale"),
		Position: stringPtr("CTO"),
		Source:   types.SourceWebsite,
		Status:   types.ContactLead,
		Score:    45,
	}
	st.CreateContact(pedro)

	fernanda := &store.Contact{
		Name:    "Fernanda Costa",
		Email:   "fernanda@costaadvogados.com.br",
		Phone:   stringPtr("+55 21 91234-5678"),
		Company: stringPtr("Costa Advogados"),
		Source:  types.SourceReferral,
		Status:  types.ContactCustomer,
		Score:   90,
		Tags:    []string{"vip"},
	}
	st.CreateContact(fernanda)

	ricardo := &store.Contact{
		Name:    "Ricardo Almeida",
		Email:   "ricardo@almeidamoveis.com.br",
		Company: stringPtr("Almeida Móveis"),
		Source:  types.SourceInstagram,
		Status:  types.ContactLead,
		Score:   30,
	}
	st.CreateContact(ricardo)

	// ============================================
	// DEALS
	// ============================================
	nextWeek := time.Now().AddDate(0, 0, 7)
	nextMonth := time.Now().AddDate(0, 1, 0)

	deals := []*store.Deal{
		{
			Title:             "Padaria Oliveira - Annual plan",
			ContactID:         maria.ID,
			PipelineID:        pipeline.ID,
			StageID:           stageID("Proposal"),
			Value:             decimal.NewFromInt(4800),
			Probability:       50,
			ExpectedCloseDate: &nextWeek,
			AssignedTo:        ana.Name,
			Tags:              []string{"annual"},
			Source:            types.SourceWhatsApp,
		},
		{
			Title:             "TechVale - Enterprise onboarding",
			ContactID:         pedro.ID,
			PipelineID:        pipeline.ID,
			StageID:           stageID("Qualified"),
			Value:             decimal.NewFromInt(24000),
			Probability:       25,
			ExpectedCloseDate: &nextMonth,
			AssignedTo:        carlos.Name,
			Source:            types.SourceWebsite,
		},
		{
			Title:       "Costa Advogados - Seat expansion",
			ContactID:   fernanda.ID,
			PipelineID:  pipeline.ID,
			StageID:     stageID("Negotiation"),
			Value:       decimal.NewFromInt(9600),
			Probability: 75,
			AssignedTo:  ana.Name,
			Tags:        []string{"expansion", "vip"},
			Source:      types.SourceReferral,
		},
		{
			Title:       "Almeida Móveis - Starter plan",
			ContactID:   ricardo.ID,
			PipelineID:  pipeline.ID,
			StageID:     stageID("Lead"),
			Value:       decimal.NewFromInt(1200),
			Probability: 10,
			AssignedTo:  julia.Name,
			Source:      types.SourceInstagram,
		},
		{
			Title:       "Padaria Oliveira - Setup service",
			ContactID:   maria.ID,
			PipelineID:  pipeline.ID,
			StageID:     stageID("Won"),
			Value:       decimal.NewFromInt(800),
			Probability: 100,
			AssignedTo:  ana.Name,
			Source:      types.SourceWhatsApp,
		},
	}
	for _, d := range deals {
		if err := st.CreateDeal(d); err != nil {
			log.Printf("[Seed] Failed to create deal %q: %v", d.Title, err)
		}
	}

	// ============================================
	// ACTIVITIES
	// ============================================
	tomorrow := time.Now().AddDate(0, 0, 1)

	activities := []*store.Activity{
		{
			Type:       types.ActivityWhatsApp,
			Title:      "Send annual plan proposal",
			Date:       tomorrow,
			ContactID:  &maria.ID,
			DealID:     &deals[0].ID,
			AssignedTo: ana.Name,
			CreatedBy:  ana.Name,
		},
		{
			Type:       types.ActivityCall,
			Title:      "Technical scoping call",
			Date:       nextWeek,
			ContactID:  &pedro.ID,
			DealID:     &deals[1].ID,
			AssignedTo: carlos.Name,
			CreatedBy:  carlos.Name,
		},
		{
			Type:       types.ActivityMeeting,
			Title:      "Contract review with legal",
			Date:       tomorrow,
			ContactID:  &fernanda.ID,
			DealID:     &deals[2].ID,
			AssignedTo: ana.Name,
			CreatedBy:  ana.Name,
		},
	}
	for _, a := range activities {
		if err := st.CreateActivity(a); err != nil {
			log.Printf("[Seed] Failed to create activity %q: %v", a.Title, err)
		}
	}

	log.Printf("[Seed] Done: %d contacts, %d deals, %d activities", 4, len(deals), len(activities))
}

func stringPtr(s string) *string {
	return &s
}
