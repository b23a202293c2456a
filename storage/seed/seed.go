// Package seed holds the raw demo data loaded into the in-memory store.
// Enum values and dates are plain strings and are only validated on Open.
package seed

type (
	Data struct {
		Students   []Student
		Employees  []Employee
		Attendance []Attendance
		Categories []Category
		Products   []Product
		Members    []Member
		Payments   []Payment
	}

	Student struct {
		ID, FirstName, LastName, Email, Phone string
		Guardian, GuardianEmail               string
		ClassLevel, Status                    string
		TuitionBalance                        float64
		BooksBorrowed                         int
		RegisteredAt                          string // 2006-01-02
	}

	Employee struct {
		ID, FirstName, LastName, Email string
		Department, Position, Status   string
		Salary                         float64
		HiredAt                        string // 2006-01-02
	}

	Attendance struct {
		EmployeeID, Date, Status string
	}

	Category struct {
		ID, Name string
	}

	Product struct {
		ID, SKU, Name, CategoryID string
		Quantity, ReorderPoint    int
		UnitPrice                 float64
	}

	Member struct {
		ID, Name, Email   string
		TotalContribution float64
		Active            bool
		JoinedAt          string // 2006-01-02
	}

	Payment struct {
		ID, MemberID, Type, Description string
		Amount                          float64
		Date                            string // 2006-01-02
	}
)

// Default returns the demo data set.
func Default() Data {
	return Data{
		Students:   students(),
		Employees:  employees(),
		Attendance: attendance(),
		Categories: categories(),
		Products:   products(),
		Members:    members(),
		Payments:   payments(),
	}
}

func students() []Student {
	return []Student{
		{ID: "stu-001", FirstName: "Amani", LastName: "Kabila", Email: "amani.kabila@masomo.test", Phone: "+243 810 111 001", Guardian: "Grace Kabila", GuardianEmail: "grace.kabila@mail.test", ClassLevel: "form1", Status: "active", TuitionBalance: 150, BooksBorrowed: 2, RegisteredAt: "2023-09-04"},
		{ID: "stu-002", FirstName: "Benoît", LastName: "Mukendi", Email: "benoit.mukendi@masomo.test", Phone: "+243 810 111 002", Guardian: "Paul Mukendi", GuardianEmail: "paul.mukendi@mail.test", ClassLevel: "form2", Status: "active", BooksBorrowed: 1, RegisteredAt: "2022-09-05"},
		{ID: "stu-003", FirstName: "Chantal", LastName: "Ilunga", Email: "chantal.ilunga@masomo.test", Phone: "+243 810 111 003", Guardian: "Rose Ilunga", GuardianEmail: "rose.ilunga@mail.test", ClassLevel: "form6", Status: "graduated", RegisteredAt: "2018-09-03"},
		{ID: "stu-004", FirstName: "Didier", LastName: "Amani", Email: "didier.amani@masomo.test", Phone: "+243 810 111 004", Guardian: "Jean Amani", GuardianEmail: "jean.amani@mail.test", ClassLevel: "form3", Status: "active", TuitionBalance: 320.5, BooksBorrowed: 3, RegisteredAt: "2021-09-06"},
		{ID: "stu-005", FirstName: "Esther", LastName: "Ngalula", Email: "esther.ngalula@masomo.test", Phone: "+243 810 111 005", Guardian: "Marie Ngalula", GuardianEmail: "marie.ngalula@mail.test", ClassLevel: "form4", Status: "inactive", TuitionBalance: 75, RegisteredAt: "2020-09-07"},
		{ID: "stu-006", FirstName: "Fiston", LastName: "Kalonji", Email: "fiston.kalonji@masomo.test", Phone: "+243 810 111 006", Guardian: "Albert Kalonji", GuardianEmail: "albert.kalonji@mail.test", ClassLevel: "form1", Status: "active", BooksBorrowed: 1, RegisteredAt: "2023-09-04"},
		{ID: "stu-007", FirstName: "Gloire", LastName: "Tshibanda", Email: "gloire.tshibanda@masomo.test", Phone: "+243 810 111 007", Guardian: "Anne Tshibanda", GuardianEmail: "anne.tshibanda@mail.test", ClassLevel: "form6", Status: "graduated", RegisteredAt: "2017-09-04"},
		{ID: "stu-008", FirstName: "Héritier", LastName: "Mbala", Email: "heritier.mbala@masomo.test", Phone: "+243 810 111 008", Guardian: "Louis Mbala", GuardianEmail: "louis.mbala@mail.test", ClassLevel: "form5", Status: "active", TuitionBalance: 90, BooksBorrowed: 4, RegisteredAt: "2019-09-02"},
		{ID: "stu-009", FirstName: "Irène", LastName: "Kapinga", Email: "irene.kapinga@masomo.test", Phone: "+243 810 111 009", Guardian: "Claire Kapinga", GuardianEmail: "claire.kapinga@mail.test", ClassLevel: "form2", Status: "active", RegisteredAt: "2022-09-05"},
		{ID: "stu-010", FirstName: "Junior", LastName: "Lukusa", Email: "junior.lukusa@masomo.test", Phone: "+243 810 111 010", Guardian: "Pierre Lukusa", GuardianEmail: "pierre.lukusa@mail.test", ClassLevel: "form3", Status: "inactive", BooksBorrowed: 2, RegisteredAt: "2021-09-06"},
	}
}

func employees() []Employee {
	return []Employee{
		{ID: "emp-001", FirstName: "Joseph", LastName: "Kasa", Email: "joseph.kasa@masomo.test", Department: "academics", Position: "Mathematics Teacher", Status: "active", Salary: 1200, HiredAt: "2016-08-29"},
		{ID: "emp-002", FirstName: "Nadine", LastName: "Mbuyi", Email: "nadine.mbuyi@masomo.test", Department: "finance", Position: "Bursar", Status: "active", Salary: 1500, HiredAt: "2015-01-12"},
		{ID: "emp-003", FirstName: "Patrick", LastName: "Lumbu", Email: "patrick.lumbu@masomo.test", Department: "academics", Position: "Physics Teacher", Status: "on_leave", Salary: 1150, HiredAt: "2018-08-27"},
		{ID: "emp-004", FirstName: "Sarah", LastName: "Ngoy", Email: "sarah.ngoy@masomo.test", Department: "library", Position: "Librarian", Status: "active", Salary: 900, HiredAt: "2019-02-04"},
		{ID: "emp-005", FirstName: "Thomas", LastName: "Kabongo", Email: "thomas.kabongo@masomo.test", Department: "administration", Position: "Head Teacher", Status: "active", Salary: 2100, HiredAt: "2012-09-03"},
		{ID: "emp-006", FirstName: "Ursule", LastName: "Mputu", Email: "ursule.mputu@masomo.test", Department: "facilities", Position: "Caretaker", Status: "active", Salary: 600, HiredAt: "2020-03-16"},
		{ID: "emp-007", FirstName: "Victor", LastName: "Nzuzi", Email: "victor.nzuzi@masomo.test", Department: "academics", Position: "Chemistry Teacher", Status: "terminated", Salary: 1100, HiredAt: "2017-08-28"},
		{ID: "emp-008", FirstName: "Yvette", LastName: "Bolingo", Email: "yvette.bolingo@masomo.test", Department: "administration", Position: "Secretary", Status: "active", Salary: 750, HiredAt: "2021-05-10"},
	}
}

func attendance() []Attendance {
	return []Attendance{
		{EmployeeID: "emp-001", Date: "2024-05-06", Status: "present"},
		{EmployeeID: "emp-002", Date: "2024-05-06", Status: "present"},
		{EmployeeID: "emp-004", Date: "2024-05-06", Status: "late"},
		{EmployeeID: "emp-005", Date: "2024-05-06", Status: "remote"},
		{EmployeeID: "emp-006", Date: "2024-05-06", Status: "absent"},
		{EmployeeID: "emp-001", Date: "2024-05-07", Status: "present"},
		{EmployeeID: "emp-002", Date: "2024-05-07", Status: "late"},
		{EmployeeID: "emp-004", Date: "2024-05-07", Status: "present"},
		{EmployeeID: "emp-005", Date: "2024-05-07", Status: "present"},
		{EmployeeID: "emp-006", Date: "2024-05-07", Status: "present"},
		{EmployeeID: "emp-008", Date: "2024-05-07", Status: "remote"},
	}
}

func categories() []Category {
	return []Category{
		{ID: "cat-sci", Name: "Science"},
		{ID: "cat-sta", Name: "Stationery"},
		{ID: "cat-spo", Name: "Sports"},
		{ID: "cat-it", Name: "IT Equipment"},
	}
}

func products() []Product {
	return []Product{
		{ID: "prd-001", SKU: "SCI-001", Name: "Chemistry Lab Kit", CategoryID: "cat-sci", Quantity: 54, ReorderPoint: 30, UnitPrice: 45.5},
		{ID: "prd-002", SKU: "STA-001", Name: "Exercise Books (pack of 10)", CategoryID: "cat-sta", Quantity: 420, ReorderPoint: 100, UnitPrice: 4.2},
		{ID: "prd-003", SKU: "SCI-002", Name: "Safety Goggles", CategoryID: "cat-sci", Quantity: 35, ReorderPoint: 50, UnitPrice: 6},
		{ID: "prd-004", SKU: "STA-002", Name: "Chalk Box", CategoryID: "cat-sta", Quantity: 18, ReorderPoint: 25, UnitPrice: 2.75},
		{ID: "prd-005", SKU: "SPO-001", Name: "Football", CategoryID: "cat-spo", Quantity: 12, ReorderPoint: 5, UnitPrice: 22},
		{ID: "prd-006", SKU: "IT-001", Name: "Projector", CategoryID: "cat-it", Quantity: 3, ReorderPoint: 2, UnitPrice: 480},
		{ID: "prd-007", SKU: "STA-003", Name: "Whiteboard Markers", CategoryID: "cat-sta", Quantity: 64, ReorderPoint: 40, UnitPrice: 1.5},
		{ID: "prd-008", SKU: "SPO-002", Name: "Skipping Ropes", CategoryID: "cat-spo", Quantity: 8, ReorderPoint: 10, UnitPrice: 3.5},
	}
}

func members() []Member {
	return []Member{
		{ID: "mem-001", Name: "Esther Kalala", Email: "esther.kalala@fund.test", TotalContribution: 5000, Active: true, JoinedAt: "2021-01-15"},
		{ID: "mem-002", Name: "Olivier Banza", Email: "olivier.banza@fund.test", TotalContribution: 3500, Active: true, JoinedAt: "2021-06-01"},
		{ID: "mem-003", Name: "Ruth Mwamba", Email: "ruth.mwamba@fund.test", TotalContribution: 1200, Active: false, JoinedAt: "2022-03-10"},
		{ID: "mem-004", Name: "Samuel Kiese", Email: "samuel.kiese@fund.test", TotalContribution: 2800, Active: true, JoinedAt: "2023-02-20"},
	}
}

func payments() []Payment {
	return []Payment{
		{ID: "pay-001", MemberID: "mem-001", Type: "income", Description: "Quarterly dividend", Amount: 3200, Date: "2024-01-15"},
		{ID: "pay-002", MemberID: "mem-002", Type: "income", Description: "Treasury bond coupon", Amount: 1800, Date: "2024-02-15"},
		{ID: "pay-003", MemberID: "mem-004", Type: "income", Description: "Savings interest", Amount: 950, Date: "2024-03-15"},
		{ID: "pay-004", MemberID: "mem-001", Type: "outcome", Description: "Laboratory equipment purchase", Amount: 2100, Date: "2024-04-02"},
	}
}
