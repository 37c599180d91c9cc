package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEmployee scans a single employee from a database row
func ScanEmployee(scanner Scanner) (*Employee, error) {
	employee := &Employee{}
	err := scanner.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Role,
		&employee.Department,
		&employee.Email,
		&employee.Phone,
	)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// ScanEmployees scans multiple employees from database rows
func ScanEmployees(rows Rows) ([]*Employee, error) {
	return scanAll(rows, ScanEmployee)
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var date string

	err := scanner.Scan(
		&task.ID,
		&task.EmployeeID,
		&task.Title,
		&task.Description,
		&date,
		&task.Hours,
		&task.Status,
	)
	if err != nil {
		return nil, err
	}

	task.Date, err = ParseDateFromDB(date)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	return scanAll(rows, ScanTask)
}

// ScanFinance scans a single finance record from a database row
func ScanFinance(scanner Scanner) (*Finance, error) {
	finance := &Finance{}
	var paid, pending string

	err := scanner.Scan(&finance.ID, &finance.Municipality, &paid, &pending)
	if err != nil {
		return nil, err
	}

	if finance.Paid, err = ParseDecimalFromDB(paid); err != nil {
		return nil, err
	}
	if finance.Pending, err = ParseDecimalFromDB(pending); err != nil {
		return nil, err
	}

	return finance, nil
}

// ScanFinances scans multiple finance records from database rows
func ScanFinances(rows Rows) ([]*Finance, error) {
	return scanAll(rows, ScanFinance)
}

func scanAll[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	results := make([]*T, 0)
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
