package state

// UserState текущий шаг диалога пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Новый приём: пациент выбирается кнопкой, дальше текстом
	StateNewAppointmentPatient  UserState = "new_appointment_patient"
	StateNewAppointmentDate     UserState = "new_appointment_date"
	StateNewAppointmentTime     UserState = "new_appointment_time"
	StateNewAppointmentDuration UserState = "new_appointment_duration"
	StateNewAppointmentNotes    UserState = "new_appointment_notes"

	// Новый пациент
	StateNewPatientFirstName UserState = "new_patient_first_name"
	StateNewPatientLastName  UserState = "new_patient_last_name"
	StateNewPatientAge       UserState = "new_patient_age"
	StateNewPatientGender    UserState = "new_patient_gender"
	StateNewPatientNotes     UserState = "new_patient_notes"

	StatePatientSearch UserState = "patient_search"
	StatePatientNotes  UserState = "patient_notes"

	// Анализ
	StateTranscriptionInput UserState = "transcription_input"
	StateStoryTitle         UserState = "story_title"
)

// Ключи данных диалога
const (
	KeyPatientID = "patient_id"
	KeyDate      = "date"
	KeyTime      = "time"
	KeyDuration  = "duration"
	KeyFirstName = "first_name"
	KeyLastName  = "last_name"
	KeyAge       = "age"
	KeyGender    = "gender"
)

// UserData состояние и введённые значения текущего диалога
type UserData struct {
	State UserState
	Data  map[string]string
}
