package domain

import (
	"time"
)

// Entity - сущность с явно объявленным ключом
type Entity interface {
	TableName() string
	PrimaryKey() int64
}

// Auditable - сущность с метками создания и изменения
type Auditable interface {
	SetCreated(t time.Time)
	SetModified(t time.Time)
}

// Audit содержит метки времени, которые проставляет слой хранения при сохранении
type Audit struct {
	Created  time.Time `json:"created" gorm:"not null"`
	Modified time.Time `json:"modified" gorm:"not null"`
}

func (a *Audit) SetCreated(t time.Time)  { a.Created = t }
func (a *Audit) SetModified(t time.Time) { a.Modified = t }

// Company представляет компанию, корень дерева владения
type Company struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`
	Audit

	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Employees   []Employee   `json:"employees,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Company) TableName() string {
	return "companies"
}

func (c *Company) PrimaryKey() int64 { return c.ID }

// Assign копирует скалярные поля, связи не трогает
func (c *Company) Assign(src *Company) {
	c.Name = src.Name
}

// Owned возвращает дочерние сущности, которые сохраняются вместе с компанией
func (c *Company) Owned() []any {
	owned := make([]any, 0, len(c.Departments)+len(c.Employees))
	for i := range c.Departments {
		owned = append(owned, &c.Departments[i])
	}
	for i := range c.Employees {
		owned = append(owned, &c.Employees[i])
	}
	return owned
}

// Department представляет отдел компании
type Department struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(255);not null"`
	CompanyID int64  `json:"company_id" gorm:"not null;index"`
	Audit

	Company   *Company   `json:"-" gorm:"foreignKey:CompanyID"`
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

func (d *Department) PrimaryKey() int64 { return d.ID }

func (d *Department) Assign(src *Department) {
	d.Name = src.Name
	d.CompanyID = src.CompanyID
}

func (d *Department) Owned() []any {
	owned := make([]any, 0, len(d.Employees))
	for i := range d.Employees {
		owned = append(owned, &d.Employees[i])
	}
	return owned
}

// Employee представляет сотрудника
type Employee struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string     `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName     string     `json:"last_name" gorm:"type:varchar(100);not null"`
	BirthDate    *time.Time `json:"birth_date" gorm:"type:date"`
	CompanyID    int64      `json:"company_id" gorm:"not null;index"`
	DepartmentID *int64     `json:"department_id" gorm:"index"`
	Audit

	Company    *Company         `json:"-" gorm:"foreignKey:CompanyID"`
	Department *Department      `json:"-" gorm:"foreignKey:DepartmentID"`
	Address    *EmployeeAddress `json:"address,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	User       *User            `json:"user,omitempty" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) PrimaryKey() int64 { return e.ID }

func (e *Employee) Assign(src *Employee) {
	e.FirstName = src.FirstName
	e.LastName = src.LastName
	e.BirthDate = src.BirthDate
	e.CompanyID = src.CompanyID
	e.DepartmentID = src.DepartmentID
}

func (e *Employee) Owned() []any {
	var owned []any
	if e.Address != nil {
		owned = append(owned, e.Address)
	}
	if e.User != nil {
		owned = append(owned, e.User)
	}
	return owned
}

// Age возвращает полный возраст в годах на момент now, -1 если дата рождения неизвестна
func (e *Employee) Age(now time.Time) int {
	if e.BirthDate == nil {
		return -1
	}
	born := e.BirthDate.UTC()
	now = now.UTC()

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// FullName возвращает имя и фамилию через пробел
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeAddress - адрес сотрудника, ключ совпадает с ключом сотрудника
type EmployeeAddress struct {
	EmployeeID int64  `json:"employee_id" gorm:"primaryKey;autoIncrement:false"`
	Address    string `json:"address" gorm:"type:varchar(500);not null"`
}

// TableName задаёт имя таблицы для GORM
func (EmployeeAddress) TableName() string {
	return "employee_addresses"
}

func (a *EmployeeAddress) PrimaryKey() int64 { return a.EmployeeID }

func (a *EmployeeAddress) Assign(src *EmployeeAddress) {
	a.Address = src.Address
}

// User - учётная запись сотрудника
type User struct {
	EmployeeID int64  `json:"employee_id" gorm:"primaryKey;autoIncrement:false"`
	Username   string `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Password   string `json:"-" gorm:"type:varchar(255);not null"`
	Token      string `json:"token,omitempty" gorm:"-"`
	Audit

	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

func (u *User) PrimaryKey() int64 { return u.EmployeeID }

func (u *User) Assign(src *User) {
	u.Username = src.Username
	u.Password = src.Password
}
