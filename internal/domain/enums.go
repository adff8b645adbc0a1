package domain

// CustomerType distinguishes residential from commercial accounts.
type CustomerType string

const (
	CustomerTypeResidential CustomerType = "residential"
	CustomerTypeCommercial  CustomerType = "commercial"
)

func (c CustomerType) String() string { return string(c) }

func (c CustomerType) IsValid() bool {
	switch c {
	case CustomerTypeResidential, CustomerTypeCommercial:
		return true
	}
	return false
}

// TechnicianStatus represents whether a technician can take work.
type TechnicianStatus string

const (
	TechnicianStatusActive   TechnicianStatus = "active"
	TechnicianStatusInactive TechnicianStatus = "inactive"
)

func (s TechnicianStatus) String() string { return string(s) }

func (s TechnicianStatus) IsValid() bool {
	switch s {
	case TechnicianStatusActive, TechnicianStatusInactive:
		return true
	}
	return false
}

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobStatusNew        JobStatus = "new"
	JobStatusInProgress JobStatus = "inProgress"
	JobStatusOnHold     JobStatus = "onHold"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// AllJobStatuses returns every job status in the fixed presentation order.
func AllJobStatuses() []JobStatus {
	return []JobStatus{
		JobStatusNew,
		JobStatusInProgress,
		JobStatusOnHold,
		JobStatusCompleted,
		JobStatusCancelled,
	}
}

func (s JobStatus) String() string { return string(s) }

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusNew, JobStatusInProgress, JobStatusOnHold, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the job still needs work.
func (s JobStatus) IsOpen() bool {
	switch s {
	case JobStatusNew, JobStatusInProgress, JobStatusOnHold:
		return true
	case JobStatusCompleted, JobStatusCancelled:
		return false
	}
	return false
}

// JobPriority represents how urgently a job needs attention.
type JobPriority string

const (
	JobPriorityLow    JobPriority = "low"
	JobPriorityMedium JobPriority = "medium"
	JobPriorityHigh   JobPriority = "high"
	JobPriorityUrgent JobPriority = "urgent"
)

// AllJobPriorities returns every priority from lowest to highest.
func AllJobPriorities() []JobPriority {
	return []JobPriority{JobPriorityLow, JobPriorityMedium, JobPriorityHigh, JobPriorityUrgent}
}

func (p JobPriority) String() string { return string(p) }

func (p JobPriority) IsValid() bool {
	switch p {
	case JobPriorityLow, JobPriorityMedium, JobPriorityHigh, JobPriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities so that urgent sorts first. Unknown values rank last.
func (p JobPriority) Rank() int {
	switch p {
	case JobPriorityUrgent:
		return 0
	case JobPriorityHigh:
		return 1
	case JobPriorityMedium:
		return 2
	case JobPriorityLow:
		return 3
	}
	return 4
}

// PaymentStatus represents the settlement state of an invoice.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// IsSettled reports whether the invoice has been paid in full.
func (s PaymentStatus) IsSettled() bool {
	switch s {
	case PaymentStatusPaid:
		return true
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusOverdue:
		return false
	}
	return false
}

// EntityKind identifies the kind of entity a mutation touched.
type EntityKind string

const (
	EntityKindCustomer         EntityKind = "customer"
	EntityKindTechnician       EntityKind = "technician"
	EntityKindJob              EntityKind = "job"
	EntityKindInvoice          EntityKind = "invoice"
	EntityKindInventoryItem    EntityKind = "inventoryItem"
	EntityKindStockUsageRecord EntityKind = "stockUsageRecord"
)

// AllEntityKinds returns every entity kind.
func AllEntityKinds() []EntityKind {
	return []EntityKind{
		EntityKindCustomer,
		EntityKindTechnician,
		EntityKindJob,
		EntityKindInvoice,
		EntityKindInventoryItem,
		EntityKindStockUsageRecord,
	}
}

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindCustomer, EntityKindTechnician, EntityKindJob,
		EntityKindInvoice, EntityKindInventoryItem, EntityKindStockUsageRecord:
		return true
	}
	return false
}

// MutationAction represents the kind of write that happened to an entity.
type MutationAction string

const (
	MutationCreated MutationAction = "created"
	MutationUpdated MutationAction = "updated"
	MutationDeleted MutationAction = "deleted"
)

func (a MutationAction) String() string { return string(a) }

func (a MutationAction) IsValid() bool {
	switch a {
	case MutationCreated, MutationUpdated, MutationDeleted:
		return true
	}
	return false
}
