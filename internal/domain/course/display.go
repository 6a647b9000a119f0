package course

import (
	"fmt"
	"io"
)

// DisplayDetails writes the course summary.
func (c *Course) DisplayDetails(w io.Writer) {
	fmt.Fprintf(w, "Course Details:\nCode: %s\nTitle: %s\nDescription: %s\nCredits: %g\nMax Capacity: %d\nEnrollment Deadline: %s\n",
		c.code, c.title, c.description, c.credits, c.maxCapacity, c.deadline)
	if c.instructor.IsZero() {
		fmt.Fprint(w, "No Instructor Assigned\n")
	} else {
		fmt.Fprintf(w, "Instructor: %s\n", c.instructorName)
	}
	fmt.Fprintf(w, "Enrolled Students: %d\n", len(c.roster))
}

// DisplayRoster writes one line per enrolled student.
func (c *Course) DisplayRoster(w io.Writer) {
	if len(c.roster) == 0 {
		fmt.Fprint(w, "No Students Enrolled in this Course!\n")
		return
	}
	fmt.Fprintf(w, "Students Enrolled in %s:\n", c.title)
	for _, entry := range c.roster {
		fmt.Fprintf(w, "ID: %d, Name: %s\n", entry.PersonID, entry.Name)
	}
}
