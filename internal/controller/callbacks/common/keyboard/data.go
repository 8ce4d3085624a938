package keyboard

import (
	"strings"
	"time"
)

// Callback data. Идентификаторы - UUID, поэтому префикс + id укладывается в 64 байта.
const (
	MainMenu = "main_menu"
	Noop     = "noop"

	WeekPrefix             = "week:" // week:2024-06-10 или week:today
	WeekToday              = "today"
	DayPrefix              = "day:"   // day:2024-06-10, day:2024-06-10:<page>
	ClosePrefix            = "close:" // close:<appointment_id>
	Appointments           = "appointments"
	AppointmentsPagePrefix = "appointments_page:" // appointments_page:<поиск>:<page>

	NewAppointment        = "new_appointment"
	PickPatientPrefix     = "pick_patient:" // pick_patient:<patient_id>
	PickPatientPagePrefix = "pick_page:"    // pick_page:<page>
	DurationPrefix        = "duration:"     // duration:45
	SkipNotes             = "skip_notes"
	CancelDialog          = "cancel_dialog"

	Patients                   = "patients"
	NewPatient                 = "new_patient"
	PatientSearch              = "patient_search"
	SortPrefix                 = "sort:"                 // sort:code:asc
	PatientsPagePrefix         = "patients_page:"        // patients_page:code:asc:<поиск>:<page>
	PatientPrefix              = "patient:"              // patient:<id>
	PatientAppointmentsPrefix  = "patient_appointments:" // patient_appointments:<id>[:<page>]
	PatientNotesPrefix         = "notes:"
	DeletePatientPrefix        = "delete_patient:"
	ConfirmDeletePatientPrefix = "confirm_delete_patient:"
	GenderPrefix               = "gender:" // gender:M

	Analysis            = "analysis"
	AnalysisPrefix      = "analysis:" // analysis:<patient_id>
	RunAnalysis         = "run_analysis"
	SessionSummary      = "session_summary"
	EditTranscription   = "edit_transcription"
	ClearTranscription  = "clear_transcription"
	StoriesPrefix       = "stories:"   // stories:<patient_id>
	NewStoryPrefix      = "new_story:" // new_story:<patient_id>
	ExportStoryPrefix   = "export_story:"
	GenogramPrefix      = "genogram:"    // genogram:<patient_id>
	LeadsPrefix         = "leads:"       // leads:<patient_id>
	NewLeadsPrefix      = "new_leads:"   // new_leads:<patient_id>
	HistoriesPrefix     = "histories:"   // histories:<patient_id>
	NewHistoryPrefix    = "new_history:" // new_history:<patient_id>
	HistoryPrefix       = "history:"     // history:<history_id>
	ExportPrefix        = "export:"      // export:appointments
	ExportAppointments  = "appointments"
	ExportPatients      = "patients"
	ExportTranscription = "transcription"
)

// DateLayout формат даты в callback data
const DateLayout = "2006-01-02"

// Arg отрезает префикс; ok=false, если data начинается не с него или аргумент пуст
func Arg(data, prefix string) (string, bool) {
	arg, found := strings.CutPrefix(data, prefix)
	if !found || arg == "" {
		return "", false
	}
	return arg, true
}

// WeekData callback недели с якорем в day
func WeekData(day time.Time) string {
	return WeekPrefix + day.Format(DateLayout)
}

func DayData(day time.Time) string {
	return DayPrefix + day.Format(DateLayout)
}

// ParseDay разбирает дату из callback data в часовом поясе loc
func ParseDay(arg string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, arg, loc)
}
