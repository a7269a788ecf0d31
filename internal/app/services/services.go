package services

// Services defined in this package:
// - AuthService: registration, login and the refresh token lifecycle
// - ProfileService: student self-service profile management
// - RosterService: admin provisioning of students and teachers
// - EventService: event management with reference expansion
// - AwardService: award submission and expanded award reads
