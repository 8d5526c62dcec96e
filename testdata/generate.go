//go:build ignore

// Generates sample inputs for trying out tabcat:
//
//	go run testdata/generate.go
package main

import (
	"log"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/parquet-go/parquet-go"
)

type Employee struct {
	Name   string  `parquet:"name"`
	Dept   string  `parquet:"dept"`
	Age    int64   `parquet:"age,optional"`
	Salary float64 `parquet:"salary"`
	City   string  `parquet:"city"`
}

const staffCSV = `name,dept,age,salary,city
alice,eng,30,50000.5,Oslo
bob,ops,25,45000,Lima
charlie,eng,35,,Oslo
diana,ops,,52000,Quito
eve,eng,28,48000,
`

func main() {
	if err := os.WriteFile("staff.csv", []byte(staffCSV), 0o644); err != nil {
		log.Fatal(err)
	}

	gz, err := os.Create("staff.csv.gz")
	if err != nil {
		log.Fatal(err)
	}
	zw := gzip.NewWriter(gz)
	if _, err := zw.Write([]byte(staffCSV)); err != nil {
		log.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		log.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		log.Fatal(err)
	}

	employees := []Employee{
		{Name: "alice", Dept: "eng", Age: 30, Salary: 50000.5, City: "Oslo"},
		{Name: "bob", Dept: "ops", Age: 25, Salary: 45000, City: "Lima"},
		{Name: "charlie", Dept: "eng", Age: 35, Salary: 61000, City: "Oslo"},
		{Name: "diana", Dept: "ops", Age: 41, Salary: 52000, City: "Quito"},
		{Name: "eve", Dept: "eng", Age: 28, Salary: 48000, City: "Lima"},
	}

	file, err := os.Create("staff.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Employee](file)
	if _, err := writer.Write(employees); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Println("Generated staff.csv, staff.csv.gz and staff.parquet")
}
