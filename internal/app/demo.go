package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/fieldservice-backend/internal/domain"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
	"github.com/heartmarshall/fieldservice-backend/internal/service/inventory"
)

// DemoCounts reports how many entities SeedDemo created.
type DemoCounts struct {
	Customers   int
	Technicians int
	Jobs        int
	Invoices    int
	Items       int
	Usage       int
}

// Skipped reports whether the store already held data.
func (c DemoCounts) Skipped() bool { return c == DemoCounts{} }

type demoJob struct {
	customer, tech int
	priority       domain.JobPriority
	status         domain.JobStatus
	day            int
	title, desc    string
	location       string
	notes          string
}

type demoInvoice struct {
	number   string
	customer int
	job      int // -1 means no job
	issued   int
	due      int
	lines    []domain.LineItem
	status   domain.PaymentStatus
	notes    string
}

type demoItem struct {
	sku, name, category string
	stock, threshold    int
	cost                string
	supplier, notes     string
}

type demoUsage struct {
	item, job, qty int
}

var demoCustomers = []fieldops.CustomerInput{
	{Name: "James Wilson", Company: "Wilson Enterprises", Email: "james@wilsonent.com", Phone: "555-0101", Address: "123 Oak Street, Austin, TX 78701", CustomerType: domain.CustomerTypeCommercial, Notes: "Long-term client, prefers morning appointments"},
	{Name: "Sarah Mitchell", Email: "sarah.m@email.com", Phone: "555-0102", Address: "456 Maple Ave, Austin, TX 78702", CustomerType: domain.CustomerTypeResidential, Notes: "Referred by James Wilson"},
	{Name: "TechCorp Solutions", Company: "TechCorp Solutions Inc.", Email: "facilities@techcorp.com", Phone: "555-0103", Address: "789 Business Blvd, Austin, TX 78703", CustomerType: domain.CustomerTypeCommercial, Notes: "Multiple locations, contact facilities manager"},
	{Name: "Robert Chen", Email: "rchen@gmail.com", Phone: "555-0104", Address: "321 Pine Road, Austin, TX 78704", CustomerType: domain.CustomerTypeResidential},
	{Name: "Green Valley HOA", Company: "Green Valley HOA", Email: "admin@greenvalleyhoa.com", Phone: "555-0105", Address: "100 Community Drive, Austin, TX 78705", CustomerType: domain.CustomerTypeCommercial, Notes: "Manages 200+ units, quarterly maintenance contracts"},
	{Name: "Maria Rodriguez", Email: "maria.r@email.com", Phone: "555-0106", Address: "654 Elm Street, Austin, TX 78706", CustomerType: domain.CustomerTypeResidential, Notes: "Prefers afternoon appointments"},
	{Name: "Austin Medical Center", Company: "Austin Medical Center", Email: "maintenance@austinmed.com", Phone: "555-0107", Address: "999 Health Pkwy, Austin, TX 78707", CustomerType: domain.CustomerTypeCommercial, Notes: "Critical systems, 24/7 availability required"},
	{Name: "David Thompson", Email: "dthompson@email.com", Phone: "555-0108", Address: "147 Cedar Lane, Austin, TX 78708", CustomerType: domain.CustomerTypeResidential},
	{Name: "Sunrise Restaurant Group", Company: "Sunrise Restaurant Group", Email: "ops@sunrisegroup.com", Phone: "555-0109", Address: "258 Food Court, Austin, TX 78709", CustomerType: domain.CustomerTypeCommercial, Notes: "Multiple restaurant locations"},
	{Name: "Linda Park", Email: "linda.park@email.com", Phone: "555-0110", Address: "369 Birch Way, Austin, TX 78710", CustomerType: domain.CustomerTypeResidential, Notes: "New customer"},
}

var demoTechnicians = []fieldops.TechnicianInput{
	{Name: "Carlos Mendez", Email: "carlos@skpm.com", Phone: "555-0201", Specialization: "HVAC", Skills: []string{"HVAC Installation", "Refrigeration", "Electrical"}, Status: domain.TechnicianStatusActive, Notes: "Senior technician, 10 years experience"},
	{Name: "Emily Johnson", Email: "emily@skpm.com", Phone: "555-0202", Specialization: "Electrical", Skills: []string{"Electrical Wiring", "Panel Upgrades", "Lighting"}, Status: domain.TechnicianStatusActive, Notes: "Licensed electrician"},
	{Name: "Marcus Williams", Email: "marcus@skpm.com", Phone: "555-0203", Specialization: "Plumbing", Skills: []string{"Plumbing", "Pipe Repair", "Water Heaters"}, Status: domain.TechnicianStatusActive, Notes: "Master plumber"},
	{Name: "Priya Patel", Email: "priya@skpm.com", Phone: "555-0204", Specialization: "General Maintenance", Skills: []string{"General Repairs", "Carpentry", "Painting"}, Status: domain.TechnicianStatusActive, Notes: "Versatile technician"},
	{Name: "Tom Bradley", Email: "tom@skpm.com", Phone: "555-0205", Specialization: "Security Systems", Skills: []string{"CCTV", "Access Control", "Alarm Systems"}, Status: domain.TechnicianStatusInactive, Notes: "On leave"},
}

var demoJobs = []demoJob{
	{2, 0, domain.JobPriorityMedium, domain.JobStatusCompleted, -10, "HVAC System Inspection", "Annual HVAC inspection and filter replacement", "789 Business Blvd, Austin, TX", "All units checked, filters replaced"},
	{0, 1, domain.JobPriorityHigh, domain.JobStatusInProgress, 2, "Electrical Panel Upgrade", "Upgrade main electrical panel to 200A service", "123 Oak Street, Austin, TX", "Permit obtained, materials ordered"},
	{6, 2, domain.JobPriorityUrgent, domain.JobStatusCompleted, -3, "Emergency Pipe Repair", "Burst pipe in basement, water damage present", "999 Health Pkwy, Austin, TX", "Pipe replaced, area dried out"},
	{1, 2, domain.JobPriorityLow, domain.JobStatusCompleted, -7, "Kitchen Faucet Replacement", "Replace leaking kitchen faucet", "456 Maple Ave, Austin, TX", "New faucet installed"},
	{4, 0, domain.JobPriorityMedium, domain.JobStatusNew, 5, "Commercial AC Maintenance", "Quarterly maintenance for 5 AC units", "100 Community Drive, Austin, TX", ""},
	{8, 1, domain.JobPriorityMedium, domain.JobStatusInProgress, 1, "Lighting Installation", "Install LED lighting throughout office", "258 Food Court, Austin, TX", "Materials on site"},
	{3, 2, domain.JobPriorityHigh, domain.JobStatusNew, 3, "Water Heater Replacement", "Replace 10-year-old water heater", "321 Pine Road, Austin, TX", "Customer requested tankless unit"},
	{5, 3, domain.JobPriorityMedium, domain.JobStatusCompleted, -14, "General Home Inspection", "Pre-purchase home inspection", "654 Elm Street, Austin, TX", "Report delivered to customer"},
	{6, 0, domain.JobPriorityUrgent, domain.JobStatusOnHold, 0, "HVAC Emergency Repair", "AC not cooling, possible compressor failure", "999 Health Pkwy, Austin, TX", "Waiting for compressor part"},
	{9, 1, domain.JobPriorityMedium, domain.JobStatusNew, 4, "Electrical Outlet Repair", "Multiple outlets not working in kitchen", "369 Birch Way, Austin, TX", ""},
	{1, 3, domain.JobPriorityLow, domain.JobStatusCompleted, -20, "Roof Gutter Cleaning", "Clean and inspect gutters", "456 Maple Ave, Austin, TX", "Gutters cleared, minor repair done"},
	{2, 3, domain.JobPriorityHigh, domain.JobStatusNew, 7, "Security Camera Installation", "Install 8-camera CCTV system", "789 Business Blvd, Austin, TX", "Equipment ordered"},
	{4, 2, domain.JobPriorityLow, domain.JobStatusCompleted, -30, "Plumbing Inspection", "Annual plumbing system inspection", "100 Community Drive, Austin, TX", "No major issues found"},
	{6, 1, domain.JobPriorityHigh, domain.JobStatusCompleted, -5, "Generator Maintenance", "Service backup generator", "999 Health Pkwy, Austin, TX", "Oil changed, tested successfully"},
	{7, 2, domain.JobPriorityMedium, domain.JobStatusInProgress, 10, "Bathroom Renovation", "Full bathroom remodel including plumbing", "147 Cedar Lane, Austin, TX", "Demo complete, rough-in started"},
	{8, 0, domain.JobPriorityUrgent, domain.JobStatusCompleted, -1, "Commercial Kitchen Repair", "Repair commercial dishwasher and hood system", "258 Food Court, Austin, TX", "Both units repaired and tested"},
	{4, 1, domain.JobPriorityMedium, domain.JobStatusCancelled, -15, "Parking Lot Lighting", "Replace parking lot light fixtures", "100 Community Drive, Austin, TX", "Cancelled by customer, budget constraints"},
	{0, 0, domain.JobPriorityLow, domain.JobStatusCompleted, -25, "HVAC Filter Replacement", "Replace all HVAC filters", "123 Oak Street, Austin, TX", "All 12 filters replaced"},
	{2, 1, domain.JobPriorityHigh, domain.JobStatusNew, 6, "Electrical Safety Audit", "Full electrical safety inspection", "789 Business Blvd, Austin, TX", "Required for insurance renewal"},
	{4, 2, domain.JobPriorityMedium, domain.JobStatusNew, 2, "Drain Cleaning", "Clear blocked drains in multiple units", "100 Community Drive, Austin, TX", ""},
}

func line(desc string, qty int, price string) domain.LineItem {
	return domain.LineItem{Description: desc, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

var demoInvoices = []demoInvoice{
	{"INV-001", 2, 0, -9, 21, []domain.LineItem{line("HVAC Inspection (5 units)", 5, "150"), line("Filter Replacement", 20, "25")}, domain.PaymentStatusPaid, "Thank you for your business"},
	{"INV-002", 6, 2, -2, 28, []domain.LineItem{line("Emergency Pipe Repair", 1, "850"), line("Materials", 1, "320")}, domain.PaymentStatusUnpaid, "Emergency service surcharge applied"},
	{"INV-003", 1, 3, -6, 24, []domain.LineItem{line("Faucet Replacement Labor", 2, "95"), line("Faucet Unit", 1, "185")}, domain.PaymentStatusPaid, ""},
	{"INV-004", 1, 10, -19, 11, []domain.LineItem{line("Gutter Cleaning", 1, "250"), line("Minor Gutter Repair", 1, "75")}, domain.PaymentStatusPaid, ""},
	{"INV-005", 5, 7, -13, 17, []domain.LineItem{line("Home Inspection", 1, "450")}, domain.PaymentStatusPaid, "Inspection report included"},
	{"INV-006", 6, 13, -4, 26, []domain.LineItem{line("Generator Service", 1, "380"), line("Oil & Filters", 1, "85")}, domain.PaymentStatusUnpaid, ""},
	{"INV-007", 4, 12, -29, -1, []domain.LineItem{line("Plumbing Inspection (200 units)", 1, "1200")}, domain.PaymentStatusOverdue, "Payment overdue"},
	{"INV-008", 8, 15, 0, 30, []domain.LineItem{line("Commercial Kitchen Repair", 1, "650"), line("Hood System Service", 1, "420"), line("Parts", 1, "280")}, domain.PaymentStatusUnpaid, "Urgent repair completed"},
	{"INV-009", 0, 17, -24, 6, []domain.LineItem{line("HVAC Filter Replacement (12 units)", 12, "45")}, domain.PaymentStatusPaid, ""},
	{"INV-010", 3, -1, -45, -15, []domain.LineItem{line("Plumbing Consultation", 1, "150")}, domain.PaymentStatusPaid, ""},
	{"INV-011", 2, -1, -60, -30, []domain.LineItem{line("Annual Maintenance Contract Q1", 1, "2400")}, domain.PaymentStatusPaid, "Quarterly contract payment"},
	{"INV-012", 6, -1, -90, -60, []domain.LineItem{line("Emergency Response Retainer", 1, "1800")}, domain.PaymentStatusPaid, ""},
	{"INV-013", 4, -1, -120, -90, []domain.LineItem{line("HOA Maintenance Contract Q4", 1, "3200")}, domain.PaymentStatusPaid, ""},
	{"INV-014", 8, 5, -3, 27, []domain.LineItem{line("LED Lighting Installation (partial)", 1, "800")}, domain.PaymentStatusPartial, "50% deposit received"},
	{"INV-015", 7, 14, -7, 23, []domain.LineItem{line("Bathroom Renovation (Phase 1)", 1, "2200"), line("Materials", 1, "850")}, domain.PaymentStatusPartial, "Phase 1 of 3"},
}

var demoItems = []demoItem{
	{"HVAC-F-001", "HVAC Air Filter 16x20x1", "HVAC", 45, 10, "12.99", "FilterPro Supply", "Standard residential filter"},
	{"HVAC-F-002", "HVAC Air Filter 20x25x1", "HVAC", 30, 10, "15.99", "FilterPro Supply", "Commercial grade"},
	{"HVAC-R-001", "Refrigerant R-410A (25lb)", "HVAC", 8, 5, "185.00", "HVAC Wholesale", "Requires EPA certification"},
	{"HVAC-C-001", "Capacitor 45/5 MFD", "HVAC", 3, 5, "28.50", "HVAC Wholesale", "Low stock - reorder needed"},
	{"ELEC-CB-020", "Circuit Breaker 20A", "Electrical", 25, 8, "18.75", "ElecSupply Co", "Single pole"},
	{"ELEC-CB-030", "Circuit Breaker 30A", "Electrical", 15, 5, "22.50", "ElecSupply Co", "Double pole"},
	{"ELEC-OUT-GFCI", "Electrical Outlet (GFCI)", "Electrical", 40, 10, "24.99", "ElecSupply Co", "Tamper resistant"},
	{"ELEC-W-12", "Wire 12 AWG (100ft)", "Electrical", 12, 5, "45.00", "ElecSupply Co", "THHN copper"},
	{"PLMB-P-05", `PVC Pipe 1/2" (10ft)`, "Plumbing", 50, 15, "8.50", "PlumbRight Supply", "Schedule 40"},
	{"PLMB-V-05", `Ball Valve 1/2"`, "Plumbing", 20, 8, "15.99", "PlumbRight Supply", "Brass construction"},
	{"PLMB-FIT-AST", "Pipe Fittings Assortment", "Plumbing", 4, 5, "35.00", "PlumbRight Supply", "Low stock"},
	{"PLMB-TT-010", "Teflon Tape (10-pack)", "Plumbing", 60, 20, "12.00", "PlumbRight Supply", ""},
	{"LIGHT-LED-A19", "LED Bulb A19 (10-pack)", "Lighting", 80, 20, "22.99", "LightTech Dist", "60W equivalent, 5000K"},
	{"LIGHT-LED-P24", "LED Panel Light 2x4", "Lighting", 18, 6, "65.00", "LightTech Dist", "Commercial grade"},
	{"GEN-CAULK-SIL", "Caulk Silicone (12oz)", "General", 30, 10, "8.99", "General Supply Co", "Clear, waterproof"},
	{"SAFE-GLOVE-01", "Safety Gloves (pair)", "Safety", 2, 10, "14.99", "SafeWork Supply", "Critical low stock"},
	{"SAFE-GLASS-01", "Safety Glasses", "Safety", 8, 10, "9.99", "SafeWork Supply", "Low stock"},
	{"HVAC-THERM-01", "Thermostat Digital", "HVAC", 10, 3, "89.99", "HVAC Wholesale", "Programmable"},
	{"PLMB-WHE-001", "Water Heater Element", "Plumbing", 6, 3, "35.00", "PlumbRight Supply", "4500W"},
	{"SAFE-SMOKE-01", "Smoke Detector", "Safety", 15, 5, "28.99", "SafeWork Supply", "10-year battery"},
}

var demoUsages = []demoUsage{
	{item: 0, job: 0, qty: 10},
	{item: 1, job: 0, qty: 10},
	{item: 8, job: 2, qty: 4},
	{item: 9, job: 2, qty: 2},
	{item: 11, job: 3, qty: 1},
	{item: 0, job: 17, qty: 12},
	{item: 12, job: 5, qty: 6},
	{item: 4, job: 13, qty: 1},
	{item: 14, job: 10, qty: 2},
}

// SeedDemo fills an empty store with a demo data set, with dates relative
// to now. A store that already holds customers, technicians or jobs is left
// untouched.
func SeedDemo(ctx context.Context, logger *slog.Logger, ops *fieldops.Service, inv *inventory.Service, now time.Time) (DemoCounts, error) {
	var counts DemoCounts

	empty, err := storeEmpty(ctx, ops)
	if err != nil {
		return counts, fmt.Errorf("app.SeedDemo: %w", err)
	}
	if !empty {
		logger.Info("demo seed skipped, store not empty")
		return counts, nil
	}

	day := func(n int) time.Time { return now.Add(time.Duration(n) * 24 * time.Hour) }

	customerIDs := make([]uuid.UUID, 0, len(demoCustomers))
	for _, in := range demoCustomers {
		c, err := ops.CreateCustomer(ctx, in)
		if err != nil {
			return counts, fmt.Errorf("app.SeedDemo customer %q: %w", in.Name, err)
		}
		customerIDs = append(customerIDs, c.ID)
		counts.Customers++
	}

	techIDs := make([]uuid.UUID, 0, len(demoTechnicians))
	for _, in := range demoTechnicians {
		t, err := ops.CreateTechnician(ctx, in)
		if err != nil {
			return counts, fmt.Errorf("app.SeedDemo technician %q: %w", in.Name, err)
		}
		techIDs = append(techIDs, t.ID)
		counts.Technicians++
	}

	jobIDs := make([]uuid.UUID, 0, len(demoJobs))
	for _, dj := range demoJobs {
		tech := techIDs[dj.tech]
		scheduled := day(dj.day)
		j, err := ops.CreateJob(ctx, fieldops.JobInput{
			Title:              dj.title,
			Description:        dj.desc,
			CustomerID:         customerIDs[dj.customer],
			AssignedTechnician: &tech,
			Status:             dj.status,
			Priority:           dj.priority,
			ScheduledDate:      &scheduled,
			Location:           dj.location,
			Notes:              dj.notes,
		})
		if err != nil {
			return counts, fmt.Errorf("app.SeedDemo job %q: %w", dj.title, err)
		}
		jobIDs = append(jobIDs, j.ID)
		counts.Jobs++
	}

	for _, di := range demoInvoices {
		in := fieldops.InvoiceInput{
			InvoiceNumber: di.number,
			CustomerID:    customerIDs[di.customer],
			IssueDate:     day(di.issued),
			DueDate:       day(di.due),
			LineItems:     di.lines,
			PaymentStatus: di.status,
			Notes:         di.notes,
		}
		if di.job >= 0 {
			jobID := jobIDs[di.job]
			in.JobID = &jobID
		}
		if _, err := ops.CreateInvoice(ctx, in); err != nil {
			return counts, fmt.Errorf("app.SeedDemo invoice %s: %w", di.number, err)
		}
		counts.Invoices++
	}

	itemIDs := make([]uuid.UUID, 0, len(demoItems))
	for _, it := range demoItems {
		item, err := ops.CreateItem(ctx, fieldops.ItemInput{
			SKU:                   it.sku,
			Name:                  it.name,
			Category:              it.category,
			QuantityInStock:       it.stock,
			MinimumStockThreshold: it.threshold,
			UnitCost:              decimal.RequireFromString(it.cost),
			Supplier:              it.supplier,
			Notes:                 it.notes,
		})
		if err != nil {
			return counts, fmt.Errorf("app.SeedDemo item %s: %w", it.sku, err)
		}
		itemIDs = append(itemIDs, item.ID)
		counts.Items++
	}

	for _, u := range demoUsages {
		_, err := inv.RecordUsage(ctx, inventory.RecordUsageInput{
			ItemID:   itemIDs[u.item],
			JobID:    jobIDs[u.job],
			Quantity: u.qty,
		})
		if err != nil {
			return counts, fmt.Errorf("app.SeedDemo usage: %w", err)
		}
		counts.Usage++
	}

	logger.Info("demo data seeded",
		slog.Int("customers", counts.Customers),
		slog.Int("technicians", counts.Technicians),
		slog.Int("jobs", counts.Jobs),
		slog.Int("invoices", counts.Invoices),
		slog.Int("items", counts.Items),
		slog.Int("usage", counts.Usage),
	)
	return counts, nil
}

func storeEmpty(ctx context.Context, ops *fieldops.Service) (bool, error) {
	customers, err := ops.ListCustomers(ctx)
	if err != nil {
		return false, err
	}
	technicians, err := ops.ListTechnicians(ctx)
	if err != nil {
		return false, err
	}
	jobs, err := ops.ListJobs(ctx, domain.JobFilter{})
	if err != nil {
		return false, err
	}
	return len(customers) == 0 && len(technicians) == 0 && len(jobs) == 0, nil
}
