package domain

// Dataset is a snapshot of every collection held in the shared context.
// It is also the JSON payload sent along with AI questions.
type Dataset struct {
	Employees   []Employee    `json:"employees"`
	Tasks       []Task        `json:"tasks"`
	FinanceData []FinanceData `json:"financeData"`
}

// Clone returns a copy whose slices share no backing arrays with d.
// Nil collections become empty slices so they encode as [] rather than null.
func (d Dataset) Clone() Dataset {
	return Dataset{
		Employees:   append(make([]Employee, 0, len(d.Employees)), d.Employees...),
		Tasks:       append(make([]Task, 0, len(d.Tasks)), d.Tasks...),
		FinanceData: append(make([]FinanceData, 0, len(d.FinanceData)), d.FinanceData...),
	}
}

// FindEmployee returns the employee with the given id.
func (d Dataset) FindEmployee(id int64) (Employee, bool) {
	for _, e := range d.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// FindTask returns the task with the given id.
func (d Dataset) FindTask(id int64) (Task, bool) {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// FindFinance returns the finance record with the given id.
func (d Dataset) FindFinance(id int64) (FinanceData, bool) {
	for _, f := range d.FinanceData {
		if f.ID == id {
			return f, true
		}
	}
	return FinanceData{}, false
}
