package application

// UpdateProfileRequest represents the request body for updating a profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
	RollNo     *string `json:"rollno,omitempty"`
	EmpID      *string `json:"empid,omitempty"`
	Password   *string `json:"password,omitempty"`
}
